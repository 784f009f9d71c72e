package console

import (
	"fmt"
	"io"

	"yt-duration-match/domain/model"

	"github.com/muesli/termenv"
)

const (
	// Header precedes the ranked list
	Header = "Best matching videos:"
	// NoResultsMessage is printed instead of the list when nothing matched
	NoResultsMessage = "No videos found matching the target duration."
)

// Printer renders ranked video ids for a terminal. Styling is dropped when the writer is not a TTY.
type Printer struct {
	out *termenv.Output
}

func NewPrinter(w io.Writer, opts ...termenv.OutputOption) *Printer {
	return &Printer{out: termenv.NewOutput(w, opts...)}
}

// Print writes a bold header and one indented watch URL per id, or only the placeholder message
func (p *Printer) Print(videoIDs []string) error {
	if len(videoIDs) == 0 {
		_, err := fmt.Fprintln(p.out, NoResultsMessage)
		return err
	}

	if _, err := fmt.Fprintln(p.out, p.out.String(Header).Bold()); err != nil {
		return err
	}
	green := p.out.Color("2")
	for i, id := range videoIDs {
		url := p.out.String(model.WatchURL(id)).Foreground(green)
		if _, err := fmt.Fprintf(p.out, "\t%d. %s\n", i+1, url); err != nil {
			return err
		}
	}
	return nil
}
