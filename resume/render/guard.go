package render

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// layoutGuard pairs the forced export layout with a guaranteed restore
// of the previous inline style. force snapshots the current state
// before mutating; restore puts it back and is safe to call whether or
// not force succeeded.
type layoutGuard struct {
	read  func(ctx context.Context) (string, error)
	write func(ctx context.Context, style string) error

	saved   string
	applied bool
}

func (g *layoutGuard) force(ctx context.Context, style string) error {
	prev, err := g.read(ctx)
	if err != nil {
		return fmt.Errorf("snapshot layout state: %w", err)
	}
	g.saved = prev
	g.applied = true
	if err := g.write(ctx, style); err != nil {
		return fmt.Errorf("force export layout: %w", err)
	}
	return nil
}

func (g *layoutGuard) restore(ctx context.Context) error {
	if !g.applied {
		return nil
	}
	g.applied = false
	if err := g.write(ctx, g.saved); err != nil {
		return fmt.Errorf("restore layout state: %w", err)
	}
	return nil
}

// forcedExportStyle is the inline style forced onto the body for
// capture: unscaled, fixed page width, natural height, visible
// overflow. The interactive view is normally scaled down to fit the
// screen; export must capture at native resolution.
func forcedExportStyle(widthPx int) string {
	return fmt.Sprintf("transform: none; width: %dpx; height: auto; overflow: visible;", widthPx)
}

func newChromedpLayoutGuard() *layoutGuard {
	return &layoutGuard{
		read: func(ctx context.Context) (string, error) {
			var style string
			err := chromedp.Evaluate(`document.body.getAttribute("style") || ""`, &style).Do(ctx)
			return style, err
		},
		write: func(ctx context.Context, style string) error {
			var ignored bool
			script := fmt.Sprintf(`(document.body.setAttribute("style", %q), true)`, style)
			return chromedp.Evaluate(script, &ignored).Do(ctx)
		},
	}
}
