package cli

import (
	"campus-chat/domain/chat"
	"io"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

var statusColours = map[string]color.Color{
	string(chat.QueueDelivered): color.FgGreen,
	string(chat.QueueRetry):     color.FgYellow,
	string(chat.QueuePending):   color.FgCyan,
	string(chat.QueueFailed):    color.FgRed,
	string(chat.StatusRead):     color.FgGreen,
}

func (o *RootOptions) status(s string) string {
	c, ok := statusColours[s]
	if !o.Colours || !ok {
		return s
	}
	return c.Render(s)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
