// App собирает зависимости приложения (конфигурация, хранилище, логгер)
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/SversusN/bodacious/config"
	"github.com/SversusN/bodacious/internal/admin"
	"github.com/SversusN/bodacious/internal/clicks"
	"github.com/SversusN/bodacious/internal/gallery"
	"github.com/SversusN/bodacious/internal/grpcsrv"
	"github.com/SversusN/bodacious/internal/handlers"
	"github.com/SversusN/bodacious/internal/logger"
	"github.com/SversusN/bodacious/internal/metrics"
	mw "github.com/SversusN/bodacious/internal/middleware"
	"github.com/SversusN/bodacious/internal/pkg/utils"
	"github.com/SversusN/bodacious/internal/sheet"
	"github.com/SversusN/bodacious/internal/storage/dbstorage"
	"github.com/SversusN/bodacious/internal/storage/primitivestorage"
	"github.com/SversusN/bodacious/internal/storage/sqlitestorage"
	"github.com/SversusN/bodacious/internal/storage/storage"
	"github.com/SversusN/bodacious/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// App структура приложения
type App struct {
	Config   *config.Config       // Объект конфигурации
	Storage  storage.Storage      // Курируемые сайты
	Clicks   clicks.Store         // Счётчики переходов
	Handlers *handlers.Handlers   //Объект http обработчиков
	Logger   *logger.ServerLogger //Внедорение логера
	Metrics  *metrics.Metrics
	Auth     *mw.AuthMW
	Fetcher  *sheet.Fetcher
	Gallery  *gallery.Service
	Admin    *admin.Service
	Subnet   *net.IPNet
	Context  context.Context //Контекст приложения
	closers  []io.Closer
}

// New Конструктор пакета, создает целевой объект приложения с нужными зависимостями
func New() *App {
	cfg := config.NewConfig()
	a, err := NewWithConfig(context.Background(), cfg)
	if err != nil {
		log.Fatalln("Failed to create app", err)
	}
	return a
}

// NewWithConfig сборка по готовой конфигурации
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	lg := logger.CreateLogger(logger.ParseLevel(cfg.LogLevel))
	a := &App{Config: cfg, Logger: lg, Context: ctx}

	ns, err := a.openStorage(ctx)
	if err != nil {
		return nil, err
	}
	a.Storage = ns
	a.Clicks, err = a.openClicks()
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	client := &http.Client{Timeout: cfg.FetchTimeout}
	a.Fetcher = sheet.NewFetcher(client, cfg.SheetURL)
	var src gallery.Source = gallery.NewFetcherSource(a.Fetcher)
	if cfg.GallerySourceURL != "" {
		src = gallery.NewEndpointSource(client, cfg.GallerySourceURL)
	}

	a.Metrics = metrics.New()
	a.Gallery = gallery.NewService(src, a.Clicks, a.Metrics, lg.Logger)
	a.Admin = admin.NewService(a.Storage, cfg.AdminPassword)

	secret := cfg.SessionSecret
	if secret == "" {
		//сессии не переживут перезапуск
		lg.Logger.Warn("SESSION_SECRET is empty, using random secret")
		secret = utils.GenerateSecret()
	}
	a.Auth = mw.NewAuthMW(secret)
	a.Auth.SetSecure(cfg.EnableHTTPS)

	a.Subnet, err = utils.GetCIDR(cfg.TrustedSubnet)
	if err != nil {
		lg.Logger.Warn("bad trusted subnet, stats disabled", zap.String("subnet", cfg.TrustedSubnet), zap.Error(err))
		a.Subnet = nil
	}

	a.Handlers = a.NewHandlers()
	return a, nil
}

// NewHandlers обработчики поверх текущих зависимостей
func (a *App) NewHandlers() *handlers.Handlers {
	return handlers.NewHandlers(handlers.Deps{
		Fetcher:     a.Fetcher,
		Gallery:     a.Gallery,
		Admin:       a.Admin,
		Auth:        a.Auth,
		Storage:     a.Storage,
		Clicks:      a.Clicks,
		Metrics:     a.Metrics,
		Logger:      a.Logger.Logger,
		TrustSubnet: a.Subnet,
		BaseURL:     a.Config.FlagBaseAddress,
	})
}

// openStorage postgres, sqlite или память с файлом, в этом порядке
func (a *App) openStorage(ctx context.Context) (storage.Storage, error) {
	cfg := a.Config
	switch {
	case cfg.DataBaseDSN != "":
		db, err := dbstorage.NewDB(ctx, cfg.DataBaseDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db)
		return db, nil
	case cfg.SQLitePath != "":
		db, err := sqlitestorage.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		a.closers = append(a.closers, db)
		return db, nil
	default:
		fh, err := utils.NewFileHelper(cfg.FlagFilePath)
		if err != nil && !errors.Is(err, utils.ErrNoFile) {
			a.Logger.Logger.Warn("websites file unavailable, memory only", zap.Error(err))
		}
		ms, err := primitivestorage.NewStorage(fh, err)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		a.closers = append(a.closers, ms)
		return ms, nil
	}
}

// openClicks файл счётчиков или память. Нечитаемый файл останавливает запуск
func (a *App) openClicks() (clicks.Store, error) {
	fh, err := utils.NewFileHelper(a.Config.ClicksFilePath)
	if err != nil {
		if !errors.Is(err, utils.ErrNoFile) {
			a.Logger.Logger.Warn("clicks file unavailable, memory only", zap.Error(err))
		}
		return clicks.NewMemoryStore(), nil
	}
	fs, err := clicks.NewFileStore(fh)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	a.closers = append(a.closers, fs)
	return fs, nil
}

// CreateRouter Создание роутера Chi
func (a *App) CreateRouter(hnd *handlers.Handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(a.Logger.LoggingMW())
	r.Use(mw.GzipMiddleware)
	r.Use(a.Auth.Session)
	//Инициализация маршрута для роутера Chi
	r.Get("/", hnd.PageGallery)
	r.Get("/go", hnd.HandlerGo)
	r.Get("/ping", hnd.HandlerDBPing)
	r.Handle("/metrics", a.Metrics.Handler())

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", hnd.PageAdmin)
		r.Post("/login", hnd.FormAdminLogin)
		r.Post("/logout", hnd.FormAdminLogout)
		r.Group(func(r chi.Router) { //secure
			r.Use(handlers.RequireAdminPage)
			r.Post("/websites", hnd.FormAdminAdd)
			r.Post("/websites/{id}/update", hnd.FormAdminUpdate)
			r.Post("/websites/{id}/delete", hnd.FormAdminDelete)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.CORS)
			r.Get("/websites", hnd.HandlerWebsites)
			r.Options("/websites", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
		r.Get("/gallery", hnd.HandlerGallery)
		r.Post("/gallery/click", hnd.HandlerClick)
		r.Get("/internal/stats", hnd.HandlerGetStats)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", hnd.HandlerAdminLogin)
			r.Post("/logout", hnd.HandlerAdminLogout)
			r.Group(func(r chi.Router) { //secure
				r.Use(mw.RequireAdmin)
				r.Get("/websites", hnd.HandlerAdminList)
				r.Post("/websites", hnd.HandlerAdminAdd)
				r.Put("/websites/{id}", hnd.HandlerAdminUpdate)
				r.Delete("/websites/{id}", hnd.HandlerAdminDelete)
			})
		})
	})
	return r
}

// NewGRPCServer gRPC сервер поверх тех же сервисов
func (a *App) NewGRPCServer() *grpc.Server {
	return grpcsrv.NewGRPCServer(grpcsrv.Deps{
		Fetcher: a.Fetcher,
		Gallery: a.Gallery,
		Admin:   a.Admin,
		Auth:    a.Auth,
		Metrics: a.Metrics,
		Logger:  a.Logger.Logger,
	})
}

// Run запуск веб сервера и gRPC сервера до сигнала остановки
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(a.Context, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	sl := a.Logger.Logger.Sugar()

	shutdownTracing, err := telemetry.Setup(ctx, a.Config.OTLPEndpoint)
	if err != nil {
		sl.Warnw("tracing disabled", "error", err)
	}

	var (
		lis net.Listener
		gs  *grpc.Server
	)
	if a.Config.GRPCAddress != "" {
		lis, err = net.Listen("tcp", a.Config.GRPCAddress)
		if err != nil {
			_ = shutdownTracing(context.Background())
			return fmt.Errorf("grpc listen: %w", err)
		}
		gs = a.NewGRPCServer()
	}

	server := a.newHTTPServer(a.CreateRouter(a.Handlers))
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sl.Infof("running on %s", server.Addr)
		var serveErr error
		if a.Config.EnableHTTPS {
			//сертификаты выдаёт менеджер autocert
			serveErr = server.ListenAndServeTLS("", "")
		} else {
			serveErr = server.ListenAndServe()
		}
		if errors.Is(serveErr, http.ErrServerClosed) {
			return nil
		}
		return serveErr
	})
	if gs != nil {
		g.Go(func() error {
			sl.Infof("gRPC running on %s", a.Config.GRPCAddress)
			return gs.Serve(lis)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		sl.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if gs != nil {
			gs.GracefulStop()
		}
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	if cerr := a.Close(); cerr != nil {
		sl.Errorw("close failed", "error", cerr)
	}
	_ = shutdownTracing(context.Background())
	return err
}

func (a *App) newHTTPServer(h http.Handler) *http.Server {
	if !a.Config.EnableHTTPS {
		return &http.Server{Addr: a.Config.FlagAddress, Handler: h}
	}
	manager := &autocert.Manager{
		// директория для хранения сертификатов
		Cache: autocert.DirCache("cache-dir"),
		// функция, принимающая Terms of Service издателя сертификатов
		Prompt: autocert.AcceptTOS,
		// перечень доменов, для которых будут поддерживаться сертификаты
		HostPolicy: autocert.HostWhitelist(a.Config.TLSHost),
	}
	return &http.Server{
		Addr:      ":443",
		Handler:   h,
		TLSConfig: manager.TLSConfig(),
	}
}

// Close закрывает хранилища и сбрасывает лог
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	a.Logger.Sync()
	return errors.Join(errs...)
}
