// Package linear renders query results as line-oriented text and reports
// span progress on stderr.
package linear

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/railfare/internal/ui/output"
	"go.trai.ch/railfare/internal/ui/style"
)

// Options configures a Renderer.
type Options struct {
	// Profile selects the colour profile. Nil means output.ColorProfileANSI.
	Profile func() termenv.Profile
	// Progress prints a line to stderr when a span starts and ends.
	Progress bool
}

// Renderer implements ports.Renderer with plain text lines.
type Renderer struct {
	stdout   io.Writer
	stderr   io.Writer
	styles   style.Styles
	progress bool

	mu    sync.Mutex
	spans map[string]spanState
}

type spanState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a Renderer. Nil writers mean os.Stdout and os.Stderr.
func NewRenderer(stdout, stderr io.Writer, opts Options) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	profile := opts.Profile
	if profile == nil {
		profile = output.ColorProfileANSI
	}
	return &Renderer{
		stdout:   stdout,
		stderr:   stderr,
		styles:   style.NewStyles(output.Renderer(stdout, profile)),
		progress: opts.Progress,
		spans:    make(map[string]spanState),
	}
}

// OnSpanStart records the span and prints a start line in progress mode.
func (r *Renderer) OnSpanStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	if !r.progress {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans[spanID] = spanState{name: name, startTime: startTime}
	_, _ = fmt.Fprintf(r.stderr, "%s started\n", r.styles.Muted.Render("["+name+"]"))
}

// OnSpanEnd prints the outcome of a recorded span.
func (r *Renderer) OnSpanEnd(spanID string, endTime time.Time, err error) {
	if !r.progress {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	span, ok := r.spans[spanID]
	if !ok {
		return
	}
	delete(r.spans, spanID)

	prefix := r.styles.Muted.Render("[" + span.name + "]")
	elapsed := endTime.Sub(span.startTime).Round(time.Millisecond)
	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "%s %s failed after %v: %v\n",
			prefix, r.styles.Error.Render(style.Cross), elapsed, err)
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "%s %s done in %v\n", prefix, r.styles.Price.Render(style.Check), elapsed)
}

// RenderTickets prints one block per offering.
func (r *Renderer) RenderTickets(w io.Writer, trains []domain.TrainInfo) error {
	var b strings.Builder
	if len(trains) == 0 {
		b.WriteString(r.styles.Muted.Render("no trains found") + "\n")
		return write(w, b.String())
	}
	for i := range trains {
		r.writeOffering(&b, &trains[i], "")
	}
	return write(w, b.String())
}

func (r *Renderer) writeOffering(b *strings.Builder, t *domain.TrainInfo, indent string) {
	b.WriteString(indent)
	b.WriteString(r.styles.Header.Render(t.RunCode))
	fmt.Fprintf(b, "  %s %s %s %s %s", t.FromStation, clock(t.DepartTime),
		style.Arrow, t.ToStation, clock(t.ArriveTime))
	if t.Duration != "" {
		b.WriteString("  " + t.Duration)
	}
	if !t.Bookable {
		b.WriteString("  " + r.styles.Warning.Render("not bookable"))
	}
	b.WriteString("\n")

	if len(t.Tickets) == 0 {
		return
	}
	seats := make([]string, 0, len(t.Tickets))
	for _, ticket := range t.Tickets {
		price := "--"
		if ticket.Price > 0 {
			price = r.styles.Price.Render(ticket.Price.String())
		}
		seat := ticket.SeatType + " " + price
		if ticket.Stock != "" {
			seat += " " + ticket.Stock
		}
		seats = append(seats, seat)
	}
	b.WriteString(indent + "  " + strings.Join(seats, "  ") + "\n")
}

// RenderSchedule prints the stop list of a run.
func (r *Renderer) RenderSchedule(w io.Writer, schedule *domain.TrainSchedule) error {
	var b strings.Builder
	b.WriteString(r.styles.Title.Render(schedule.RunCode))
	fmt.Fprintf(&b, " %s %s\n", schedule.RunNumber, schedule.Date)
	for i, stop := range schedule.Stops {
		fmt.Fprintf(&b, "%2d  %-5s  %-5s  %s", i+1, clock(stop.ArriveTime), clock(stop.DepartTime), stop.StationName)
		if stop.DayOffset > 0 {
			b.WriteString(" " + r.styles.Muted.Render("(+"+strconv.Itoa(stop.DayOffset)+")"))
		}
		b.WriteString("\n")
	}
	return write(w, b.String())
}

// RenderFare prints the full-span offering, the legs and the totals.
func (r *Renderer) RenderFare(w io.Writer, result *domain.FareResult) error {
	var b strings.Builder
	if t := result.Train; t != nil {
		b.WriteString(r.styles.Title.Render(t.RunCode))
		fmt.Fprintf(&b, " %s %s %s %s\n", t.FromStation, style.Arrow, t.ToStation, t.TrainDate)
		fmt.Fprintf(&b, "full fare  %s\n", r.styles.Price.Render(result.RawPrice.String()))
	}

	for i := range result.Legs {
		leg := &result.Legs[i]
		price, _ := leg.LowestPrice()
		fmt.Fprintf(&b, "  %s %s %s  %s\n", leg.FromStation, style.Arrow, leg.ToStation,
			r.styles.Price.Render(price.String()))
	}
	for _, gap := range result.Gaps {
		fmt.Fprintf(&b, "  %s %s %s  %s\n", gap.From, style.Arrow, gap.To,
			r.styles.Warning.Render(gapReason(gap)))
	}

	switch {
	case !result.Complete:
		b.WriteString(r.styles.Warning.Render(style.Warning+" fare incomplete, "+
			strconv.Itoa(len(result.Gaps))+" leg(s) unresolved") + "\n")
	case len(result.Legs) > 0:
		fmt.Fprintf(&b, "segmented  %s", r.styles.Price.Render(result.TotalPrice.String()))
		if saving := result.Saving(); saving > 0 {
			b.WriteString("  " + r.styles.Saving.Render("save "+saving.String()))
		}
		b.WriteString("\n")
	}
	return write(w, b.String())
}

// RenderStations prints one station per line.
func (r *Renderer) RenderStations(w io.Writer, stations []domain.Station) error {
	var b strings.Builder
	if len(stations) == 0 {
		b.WriteString(r.styles.Muted.Render("no stations found") + "\n")
		return write(w, b.String())
	}
	for _, st := range stations {
		b.WriteString(r.styles.Header.Render(st.Code))
		fmt.Fprintf(&b, "  %s  %s", st.Name, st.Pinyin)
		if st.City != "" {
			b.WriteString("  " + r.styles.Muted.Render(st.City))
		}
		b.WriteString("\n")
	}
	return write(w, b.String())
}

func gapReason(gap domain.LegGap) string {
	switch gap.Status {
	case domain.LegAmbiguous:
		return "ambiguous (" + strconv.Itoa(gap.Matches) + " matches)"
	case domain.LegUnpriced:
		return "no priced seat"
	default:
		return "not found"
	}
}

func clock(s string) string {
	if s == "" {
		return domain.NoTime
	}
	return s
}

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
