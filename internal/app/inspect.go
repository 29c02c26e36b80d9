package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/modelcache/internal/core/domain"
	"go.trai.ch/modelcache/internal/ui/style"
)

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	JSON bool
}

// Inspect writes the entries persisted by the last session to w.
func (a *App) Inspect(_ context.Context, w io.Writer, opts InspectOptions) error {
	wf, err := a.workfile()
	if err != nil {
		return err
	}

	details, err := a.entries.Load(domain.CacheDir(wf.Root, wf.Settings.CacheDir))
	if err != nil {
		return err
	}
	if details == nil {
		_, err := fmt.Fprintln(w, "no cached models")
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(details)
	}
	return renderEntries(w, details)
}

func renderEntries(w io.Writer, details *domain.EntryDetails) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "MODEL\tOFFSET\tLENGTH")
	for _, entry := range details.Models {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", entry.Key(), entry.Address.Offset, entry.Address.Length)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	header, rows, _ := strings.Cut(buf.String(), "\n")
	header = style.Header(lipgloss.NewRenderer(w)).Render(header)

	_, err := fmt.Fprintf(w, "%s\n%s%d models from session %s\n", header, rows, len(details.Models), details.SessionID)
	return err
}
