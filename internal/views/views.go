// Package views renders the client's read models as text. Pure formatting;
// nothing here mutates state or talks to the backend.
package views

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/diyeddin/delivery-ui/internal/cart"
	"github.com/diyeddin/delivery-ui/internal/domain"
	"github.com/diyeddin/delivery-ui/internal/status"
)

const barWidth = 20

// Cart renders the cart grouped by store, with per-line subtotals and the
// running total, the way the drawer and checkout summary present it.
func Cart(w io.Writer, groups []cart.StoreGroup, total float64, itemCount int) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, g := range groups {
		fmt.Fprintf(tw, "%s\n", g.StoreName)
		for _, l := range g.Lines {
			fmt.Fprintf(tw, "  %d\t%s\tx%d\t$%.2f\t$%.2f\n",
				l.ProductID, l.Name, l.Quantity, l.Price, l.Subtotal())
		}
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d item(s), total $%.2f\n", itemCount, total)
}

// Orders renders the customer tracking view: newest first, one progress
// tracker per order.
func Orders(w io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders yet.")
		return
	}

	sorted := make([]domain.Order, len(orders))
	copy(sorted, orders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	for _, o := range sorted {
		v := status.Project(string(o.Status))
		fmt.Fprintf(w, "Order #%d  %s  $%.2f\n", o.ID, v.Label, o.TotalPrice)
		fmt.Fprintf(w, "  %s %3d%%  %s\n", progressBar(v), v.ProgressPercent, milestoneLine(v))
		for _, item := range o.Items {
			fmt.Fprintf(w, "    %dx %s\n", item.Quantity, item.ProductName)
		}
	}
}

// Fulfillment renders the owner board: new orders waiting for confirmation,
// confirmed orders waiting for pickup, everything already in delivery, and
// cancelled orders in their own visually distinct lane.
func Fulfillment(w io.Writer, orders []domain.Order) {
	var pending, ready, history, cancelled []domain.Order
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusPending:
			pending = append(pending, o)
		case domain.OrderStatusConfirmed:
			ready = append(ready, o)
		case domain.OrderStatusCancelled:
			cancelled = append(cancelled, o)
		default:
			history = append(history, o)
		}
	}

	lane(w, "New", pending)
	lane(w, "Ready for pickup", ready)
	lane(w, "In delivery / done", history)
	if len(cancelled) > 0 {
		lane(w, "Cancelled", cancelled)
	}
}

// Jobs renders the driver view: claimable orders plus the active job with
// the action that would advance it.
func Jobs(w io.Writer, available, assigned []domain.Order) {
	lane(w, "Available", available)

	var active []domain.Order
	for _, o := range assigned {
		if !o.Status.IsTerminal() {
			active = append(active, o)
		}
	}
	lane(w, "Active", active)

	for _, o := range active {
		if next := domain.NextDriverStatus(o.Status); next != "" {
			fmt.Fprintf(w, "Next step for #%d: mark %s\n", o.ID, next)
		}
	}
}

func Stores(w io.Writer, stores []domain.Store) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTORE\tDESCRIPTION")
	for _, s := range stores {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", s.ID, s.Name, s.Description)
	}
	tw.Flush()
}

func Products(w io.Writer, products []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tSTOCK")
	for _, p := range products {
		stock := "in stock"
		if !p.InStock {
			stock = "sold out"
		}
		fmt.Fprintf(tw, "%d\t%s\t$%.2f\t%s\n", p.ID, p.Name, p.Price, stock)
	}
	tw.Flush()
}

// Inventory renders the owner's product table with stock units, the manage
// view's counterpart to the customer-facing Products table.
func Inventory(w io.Writer, products []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tPRICE\tSTOCK\tDESCRIPTION")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t$%.2f\t%d units\t%s\n",
			p.ID, p.Name, p.Price, p.Stock, p.Description)
	}
	tw.Flush()
}

func Users(w io.Writer, users []domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role)
	}
	tw.Flush()
}

func lane(w io.Writer, title string, orders []domain.Order) {
	fmt.Fprintf(w, "%s (%d)\n", title, len(orders))
	for _, o := range orders {
		v := status.Project(string(o.Status))
		fmt.Fprintf(w, "  #%d  %-12s  $%.2f  %s\n", o.ID, v.Label, o.TotalPrice, o.DeliveryAddress)
	}
}

func progressBar(v status.View) string {
	filled := v.ProgressPercent * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func milestoneLine(v status.View) string {
	parts := make([]string, 0, 4)
	for _, m := range status.Milestones() {
		mark := " "
		if v.Reached(m) {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", mark, m.Label))
	}
	return strings.Join(parts, "  ")
}
