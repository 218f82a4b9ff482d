package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/SversusN/bodacious/internal/grpcsrv"
	"github.com/SversusN/bodacious/internal/grpcsrv/interceptors"
)

func newAdminCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Curate the websites table over gRPC",
	}
	cmd.PersistentFlags().StringVarP(&o.GRPC, "grpc", "g", envOr(EnvGRPC, "localhost:3200"), "gRPC server address")
	cmd.PersistentFlags().StringVar(&o.Token, "token", envOr(EnvToken, ""), "session token from admin login")

	var description, link string
	addFlags := func(c *cobra.Command) {
		c.Flags().StringVarP(&description, "description", "d", "", "website description")
		c.Flags().StringVarP(&link, "url", "u", "", "website URL")
	}

	login := &cobra.Command{
		Use:   "login password",
		Short: "Print a session token",
		Args:  cobra.ExactArgs(1),
		RunE: o.withClient(func(ctx context.Context, c *grpcsrv.GalleryClient, args []string) error {
			token, err := c.Login(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(o.Out, token.GetValue())
			return nil
		}),
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List curated websites",
		Args:  cobra.NoArgs,
		RunE: o.withClient(func(ctx context.Context, c *grpcsrv.GalleryClient, _ []string) error {
			res, err := c.ListWebsites(ctx)
			if err != nil {
				return err
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "Order", "Description", "URL")
			for _, v := range res.GetFields()["websites"].GetListValue().GetValues() {
				f := v.GetStructValue().GetFields()
				t.Row(
					f["id"].GetStringValue(),
					fmt.Sprint(f["order_index"].GetNumberValue()),
					f["description"].GetStringValue(),
					f["url"].GetStringValue(),
				)
			}
			fmt.Fprintln(o.Out, t.String())
			return nil
		}),
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a website on top of the list",
		Args:  cobra.NoArgs,
		RunE: o.withClient(func(ctx context.Context, c *grpcsrv.GalleryClient, _ []string) error {
			in, err := structpb.NewStruct(map[string]any{"description": description, "url": link})
			if err != nil {
				return err
			}
			res, err := c.AddWebsite(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(o.Out, res.GetFields()["id"].GetStringValue())
			return nil
		}),
	}
	addFlags(add)

	update := &cobra.Command{
		Use:   "update id",
		Short: "Change description and URL of a website",
		Args:  cobra.ExactArgs(1),
		RunE: o.withClient(func(ctx context.Context, c *grpcsrv.GalleryClient, args []string) error {
			in, err := structpb.NewStruct(map[string]any{"id": args[0], "description": description, "url": link})
			if err != nil {
				return err
			}
			_, err = c.UpdateWebsite(ctx, in)
			return err
		}),
	}
	addFlags(update)

	rm := &cobra.Command{
		Use:   "rm id",
		Short: "Delete a website",
		Args:  cobra.ExactArgs(1),
		RunE: o.withClient(func(ctx context.Context, c *grpcsrv.GalleryClient, args []string) error {
			_, err := c.DeleteWebsite(ctx, args[0])
			return err
		}),
	}

	cmd.AddCommand(login, ls, add, update, rm)
	return cmd
}

type clientFunc func(ctx context.Context, c *grpcsrv.GalleryClient, args []string) error

// withClient соединение на время команды, токен уходит в метаданных
func (o *Options) withClient(fn clientFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if o.GRPC == "" {
			return errors.New("grpc address is empty")
		}
		conn, err := grpc.NewClient(o.GRPC, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return err
		}
		defer conn.Close()
		ctx := cmd.Context()
		if o.Token != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, interceptors.AuthorizationKey, "Bearer "+o.Token)
		}
		return fn(ctx, grpcsrv.NewGalleryClient(conn), args)
	}
}
