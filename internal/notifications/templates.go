package notifications

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingContext carries everything the templates need about a reservation
type BookingContext struct {
	BookingID  uuid.UUID
	UserID     uuid.UUID
	UserName   string
	UserEmail  string
	UserPhone  string
	SeatNumber string
	Location   string
	Date       string
	TimeSlot   string
	Start      time.Time
	End        time.Time
}

func (bc BookingContext) calendarEvent() CalendarEvent {
	location := bc.Location
	if location == "" {
		location = "Office"
	}
	return CalendarEvent{
		UID:         fmt.Sprintf("booking-%s@seatly", bc.BookingID),
		Title:       "Seat Reservation - " + bc.SeatNumber,
		Description: fmt.Sprintf("Seat %s reserved on %s at %s", bc.SeatNumber, bc.Date, bc.TimeSlot),
		Location:    location,
		Start:       bc.Start,
		End:         bc.End,
	}
}

// CalendarLinksFor returns the add-to-calendar deep links for a booking
func CalendarLinksFor(bc BookingContext) CalendarLinks {
	return BuildCalendarLinks(bc.calendarEvent())
}

// ICSAttachmentFor renders a booking as an iCalendar attachment
func ICSAttachmentFor(bc BookingContext) Attachment {
	return BuildICSAttachment(bc.calendarEvent())
}

func baseNotification(notType NotificationType, bc BookingContext) *Notification {
	n := NewNotification(notType)
	n.RecipientID = bc.UserID
	n.RecipientName = bc.UserName
	n.RecipientEmail = bc.UserEmail
	n.RecipientPhone = bc.UserPhone
	bookingID := bc.BookingID
	n.BookingID = &bookingID
	return n
}

// confirmationBody is shared by confirmed, updated and admin-assigned
// notifications; only the subject differs.
func confirmationBody(bc BookingContext) string {
	links := CalendarLinksFor(bc)
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your seat <strong>%s</strong> is booked for <strong>%s</strong> at <strong>%s</strong>.</p>
<p><a href="%s">Add to Google Calendar</a> | <a href="%s">Add to Outlook</a></p>`,
		bc.UserName, bc.SeatNumber, bc.Date, bc.TimeSlot, links.Google, links.Outlook,
	)
}

// BuildBookingConfirmed builds the notification for a new reservation
func BuildBookingConfirmed(bc BookingContext) *Notification {
	n := baseNotification(NotificationTypeBookingConfirmed, bc)
	n.Subject = "Seat Booking Confirmation"
	n.HTMLBody = confirmationBody(bc)
	n.Attachments = []Attachment{ICSAttachmentFor(bc)}
	return n
}

// BuildBookingUpdated builds the notification for a modified reservation
func BuildBookingUpdated(bc BookingContext) *Notification {
	n := baseNotification(NotificationTypeBookingUpdated, bc)
	n.Subject = "Seat Reservation Updated"
	n.HTMLBody = confirmationBody(bc)
	n.Attachments = []Attachment{ICSAttachmentFor(bc)}
	return n
}

// BuildSeatAssigned builds the notification sent when an admin books on
// behalf of a user.
func BuildSeatAssigned(bc BookingContext) *Notification {
	n := baseNotification(NotificationTypeSeatAssigned, bc)
	n.Subject = "Seat Assigned by Admin"
	n.HTMLBody = confirmationBody(bc)
	n.Attachments = []Attachment{ICSAttachmentFor(bc)}
	return n
}

// BuildBookingCancelled builds the cancellation notice
func BuildBookingCancelled(bc BookingContext) *Notification {
	n := baseNotification(NotificationTypeBookingCancelled, bc)
	n.Subject = "Booking Cancellation Notice"
	n.HTMLBody = fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your booking for seat <strong>%s</strong> on <strong>%s</strong> at <strong>%s</strong> has been cancelled.</p>`,
		bc.UserName, bc.SeatNumber, bc.Date, bc.TimeSlot,
	)
	return n
}

// BuildReminder24h builds the 24-hour reminder (email and SMS)
func BuildReminder24h(bc BookingContext) *Notification {
	n := baseNotification(NotificationTypeReminder24h, bc)
	n.Subject = "Reminder: Your seat reservation is in 24 hours"
	n.HTMLBody = reminderBody(bc)
	n.SMSBody = fmt.Sprintf("Seat reminder: %s on %s %s.", bc.SeatNumber, bc.Date, bc.TimeSlot)
	return n
}

// BuildReminder1h builds the 1-hour reminder (email and SMS)
func BuildReminder1h(bc BookingContext) *Notification {
	n := baseNotification(NotificationTypeReminder1h, bc)
	n.Subject = "Reminder: Your seat reservation starts in 1 hour"
	n.HTMLBody = reminderBody(bc)
	n.SMSBody = fmt.Sprintf("Seat starts in 1 hour: %s at %s.", bc.SeatNumber, bc.TimeSlot)
	return n
}

func reminderBody(bc BookingContext) string {
	location := bc.Location
	if location == "" {
		location = "Office"
	}
	return fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Reminder: You reserved seat <strong>%s</strong> at %s on <strong>%s %s</strong>.</p>`,
		bc.UserName, bc.SeatNumber, location, bc.Date, bc.TimeSlot,
	)
}
