package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/SversusN/bodacious/internal/gallery"
)

var warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

func newListCmd(o *Options) *cobra.Command {
	var order string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gallery links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := o.gallery(cmd.Context(), gallery.ParseOrder(order))
			if err != nil {
				return err
			}
			if view.Warning {
				fmt.Fprintln(o.Out, warningStyle.Render("Spreadsheet unavailable, showing fallback links"))
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers("", "Description", "URL", "Clicks")
			for _, it := range view.Items {
				t.Row(it.Icon, it.Description, it.URL, strconv.Itoa(it.Clicks))
			}
			fmt.Fprintln(o.Out, t.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&order, "sort", string(gallery.OrderRecent), "recent or clicks")
	return cmd
}

func newOpenCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "open url",
		Short: "Record a click and open the link in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.click(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(o.Out, "Opening %s (%d clicks)\n", c.URL, c.Clicks)
			return o.Open(c.URL)
		},
	}
}

func newSheetCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "sheet",
		Short: "Show the spreadsheet as converted by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.websites(cmd.Context())
			if err != nil {
				return err
			}
			if !env.Success {
				return errors.New(env.Error)
			}
			t := table.New().Border(lipgloss.NormalBorder()).Headers("Description", "URL")
			for _, l := range env.Data {
				t.Row(l.Description, l.URL)
			}
			fmt.Fprintln(o.Out, t.String())
			return nil
		},
	}
}
