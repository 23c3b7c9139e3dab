package datepicker

import (
	"time"

	"guideomra/internal/calendar"
)

// DayCell is one cell of the month grid
type DayCell struct {
	Day        int            `json:"day"`
	Date       string         `json:"date"`
	Crowd      calendar.Level `json:"crowd"`
	CrowdLabel string         `json:"crowd_label"`
}

// GridResponse is everything the picker needs to draw a month
type GridResponse struct {
	System   calendar.System `json:"system"`
	Label    string          `json:"label"`
	Offset   int             `json:"offset"`
	Length   int             `json:"length"`
	FirstDay string          `json:"first_day"`
	Days     []DayCell       `json:"days"`
}

func toGridResponse(g calendar.Grid) GridResponse {
	resp := GridResponse{
		System:   g.System,
		Label:    g.Label,
		Offset:   g.Offset(),
		Length:   g.Length,
		FirstDay: g.FirstDay.Format(time.DateOnly),
		Days:     make([]DayCell, 0, g.Length),
	}
	for _, d := range g.Days() {
		date, _ := g.Date(d)
		level := calendar.CrowdLevel(d)
		resp.Days = append(resp.Days, DayCell{
			Day:        d,
			Date:       date.Format(time.DateOnly),
			Crowd:      level,
			CrowdLabel: level.Label(),
		})
	}
	return resp
}

// PickRequest is a day press on the current selection
type PickRequest struct {
	System string `json:"system"`
	Start  int    `json:"start" validate:"gte=0,lte=31"`
	End    int    `json:"end" validate:"gte=0,lte=31"`
	Day    int    `json:"day" validate:"required,min=1,max=31"`
}

// PickResponse is the selection after the press
type PickResponse struct {
	Start      int             `json:"start"`
	End        int             `json:"end"`
	State      calendar.State  `json:"state"`
	CanConfirm bool            `json:"can_confirm"`
	Range      *calendar.Range `json:"range,omitempty"`
}
