package notifications

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CalendarEvent is the portable description of a reservation used to build
// ICS attachments and provider deep-links.
type CalendarEvent struct {
	UID         string
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// CalendarLinks holds add-to-calendar deep links for the major providers
type CalendarLinks struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
}

const icsDateLayout = "20060102T150405Z"

func toICSDate(t time.Time) string {
	return t.UTC().Format(icsDateLayout)
}

// BuildCalendarLinks builds Google and Outlook "add event" URLs
func BuildCalendarLinks(event CalendarEvent) CalendarLinks {
	text := url.QueryEscape(event.Title)
	details := url.QueryEscape(event.Description)
	loc := url.QueryEscape(event.Location)

	google := fmt.Sprintf(
		"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&details=%s&location=%s&dates=%s/%s",
		text, details, loc, toICSDate(event.Start), toICSDate(event.End),
	)

	outlook := fmt.Sprintf(
		"https://outlook.live.com/calendar/0/deeplink/compose?path=/calendar/action/compose&rru=addevent&subject=%s&body=%s&location=%s&startdt=%s&enddt=%s",
		text, details, loc,
		url.QueryEscape(event.Start.Format(time.RFC3339)),
		url.QueryEscape(event.End.Format(time.RFC3339)),
	)

	return CalendarLinks{Google: google, Outlook: outlook}
}

// BuildICSAttachment renders the event as an iCalendar attachment
func BuildICSAttachment(event CalendarEvent) Attachment {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Seatly//Seat Reservation//EN",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:" + event.UID,
		"DTSTAMP:" + toICSDate(time.Now()),
		"DTSTART:" + toICSDate(event.Start),
		"DTEND:" + toICSDate(event.End),
		"SUMMARY:" + event.Title,
		"DESCRIPTION:" + strings.ReplaceAll(event.Description, "\n", "\\n"),
		"LOCATION:" + event.Location,
		"END:VEVENT",
		"END:VCALENDAR",
	}

	return Attachment{
		Filename:    "seat-reservation.ics",
		ContentType: "text/calendar",
		Content:     []byte(strings.Join(lines, "\r\n")),
	}
}
