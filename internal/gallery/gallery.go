// Package gallery собирает витрину ссылок: источник, запасной список, счётчики переходов, сортировка.
package gallery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/SversusN/bodacious/internal/clicks"
	"github.com/SversusN/bodacious/internal/internalerrors"
	"github.com/SversusN/bodacious/internal/metrics"
	"github.com/SversusN/bodacious/internal/sheet"
)

// Order порядок показа
type Order string

const (
	OrderRecent Order = "recent" // новые сверху
	OrderClicks Order = "clicks" // по убыванию переходов
)

// ParseOrder неизвестное значение означает OrderRecent
func ParseOrder(s string) Order {
	if Order(strings.ToLower(strings.TrimSpace(s))) == OrderClicks {
		return OrderClicks
	}
	return OrderRecent
}

// Item ссылка галереи со счётчиком
type Item struct {
	Description string `json:"description"`
	URL         string `json:"url"`
	Clicks      int    `json:"clicks"`
	Icon        string `json:"icon"`
}

// View то, что видит посетитель. Warning означает показ запасного списка
type View struct {
	Items   []Item `json:"items"`
	Order   Order  `json:"order"`
	Warning bool   `json:"warning"`
}

// Click итог перехода по ссылке
type Click struct {
	URL    string `json:"url"`
	Clicks int    `json:"clicks"`
}

// Fallback запасной список на случай недоступности таблицы
func Fallback() []sheet.Link {
	return []sheet.Link{
		{Description: "Fly a plane in your browser", URL: "geo-fs.com"},
		{Description: "Draw with physics and gravity", URL: "physicssketchpad.com"},
		{Description: "Make music with falling sand", URL: "sandspiel.club"},
		{Description: "Play with virtual slime", URL: "slime-simulator.com"},
		{Description: "Explore a weird virtual museum", URL: "savethesounds.info"},
	}
}

// Service галерея
type Service struct {
	src     Source
	clicks  clicks.Store
	metrics *metrics.Metrics
	log     *zap.Logger

	mu    sync.RWMutex
	known map[string]struct{} // адреса последнего загруженного списка
}

func NewService(src Source, cs clicks.Store, m *metrics.Metrics, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{src: src, clicks: cs, metrics: m, log: log}
}

// Load загружает ссылки. Любая ошибка источника даёт запасной список с предупреждением
func (g *Service) Load(ctx context.Context, order Order) View {
	view := View{Order: order}
	links, err := g.src.Links(ctx)
	if err != nil {
		g.log.Warn("failed to load sheet, using fallback", zap.Error(err))
		g.metrics.Fallback()
		links = Fallback()
		view.Warning = true
	} else {
		links = reversed(links)
	}
	g.remember(links)

	counts, err := g.clicks.Counts(ctx)
	if err != nil {
		g.log.Warn("failed to read click counts", zap.Error(err))
		counts = map[string]int{}
	}
	view.Items = make([]Item, 0, len(links))
	for _, l := range links {
		view.Items = append(view.Items, Item{
			Description: l.Description,
			URL:         l.URL,
			Clicks:      counts[l.URL],
			Icon:        Icon(l.Description),
		})
	}
	if order == OrderClicks {
		SortByClicks(view.Items)
	}
	return view
}

// Click увеличивает счётчик ссылки на единицу и возвращает адрес для перехода.
// Учитываются только ссылки текущего списка и запасного
func (g *Service) Click(ctx context.Context, url string) (Click, error) {
	if strings.TrimSpace(url) == "" {
		return Click{}, internalerrors.ErrEmptyField
	}
	if !g.inGallery(ctx, url) {
		return Click{}, internalerrors.ErrUnknownLink
	}
	n, err := g.clicks.Increment(ctx, url)
	if err != nil {
		return Click{}, fmt.Errorf("record click: %w", err)
	}
	g.metrics.Clicked()
	return Click{URL: NormalizeURL(url), Clicks: n}, nil
}

// inGallery при промахе список перечитывается из источника
func (g *Service) inGallery(ctx context.Context, url string) bool {
	for _, l := range Fallback() {
		if l.URL == url {
			return true
		}
	}
	if g.isKnown(url) {
		return true
	}
	links, err := g.src.Links(ctx)
	if err != nil {
		return false
	}
	g.remember(links)
	return g.isKnown(url)
}

func (g *Service) remember(links []sheet.Link) {
	known := make(map[string]struct{}, len(links))
	for _, l := range links {
		known[l.URL] = struct{}{}
	}
	g.mu.Lock()
	g.known = known
	g.mu.Unlock()
}

func (g *Service) isKnown(url string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.known[url]
	return ok
}

// SortByClicks по убыванию переходов, равные остаются в прежнем порядке
func SortByClicks(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Clicks > items[j].Clicks
	})
}

// NormalizeURL добавляет https:// адресам без схемы
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if strings.HasPrefix(u, "http") {
		return u
	}
	return "https://" + u
}

func reversed(links []sheet.Link) []sheet.Link {
	res := make([]sheet.Link, len(links))
	for i, l := range links {
		res[len(links)-1-i] = l
	}
	return res
}
