// Package status projects a raw backend order status into the presentation
// model shared by the customer order tracker, the driver job list and the
// store fulfillment board. The order state machine itself lives on the
// backend; this package only describes how an observed status is shown.
package status

import "github.com/diyeddin/delivery-ui/internal/domain"

// Tone names the visual treatment for a status badge or progress bar. The
// palette matches the storefront theme; consumers decide how a tone maps to
// actual styling (ANSI color, CSS class, ...).
type Tone string

const (
	ToneAmber   Tone = "amber"
	ToneSlate   Tone = "slate"
	ToneIndigo  Tone = "indigo"
	ToneEmerald Tone = "emerald"
	ToneRed     Tone = "red"
	ToneGray    Tone = "gray"
)

// View is the fully-populated presentation of one order status.
type View struct {
	Label           string
	Tone            Tone
	ProgressPercent int
	IsTerminal      bool
}

// Milestone is one step of the delivery progress tracker. A milestone is
// reached when the order's progress is at or past its threshold.
type Milestone struct {
	Label     string
	Threshold int
}

// Project maps a raw status string to its view. The mapping is total: any
// string outside the known set yields a neutral view with the raw value as
// label rather than an error.
func Project(raw string) View {
	switch domain.OrderStatus(raw) {
	case domain.OrderStatusPending:
		return View{Label: "Order Placed", Tone: ToneAmber, ProgressPercent: 5}
	case domain.OrderStatusConfirmed:
		return View{Label: "Packing", Tone: ToneSlate, ProgressPercent: 35}
	case domain.OrderStatusAssigned, domain.OrderStatusPickedUp, domain.OrderStatusInTransit:
		return View{Label: "En Route", Tone: ToneIndigo, ProgressPercent: 65}
	case domain.OrderStatusDelivered:
		return View{Label: "Delivered", Tone: ToneEmerald, ProgressPercent: 100, IsTerminal: true}
	case domain.OrderStatusCancelled:
		// Cancellation zeroes progress no matter how far the order got.
		return View{Label: "Cancelled", Tone: ToneRed, ProgressPercent: 0, IsTerminal: true}
	default:
		return View{Label: raw, Tone: ToneGray, ProgressPercent: 0}
	}
}

// Milestones returns the tracker steps in forward order, thresholds
// strictly increasing.
func Milestones() []Milestone {
	return []Milestone{
		{Label: "Ordered", Threshold: 5},
		{Label: "Packing", Threshold: 35},
		{Label: "En Route", Threshold: 65},
		{Label: "Delivered", Threshold: 100},
	}
}

// Reached reports whether the view's progress has hit the milestone.
func (v View) Reached(m Milestone) bool {
	return v.ProgressPercent >= m.Threshold
}
