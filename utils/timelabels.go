package utils

import "fmt"

// HourLabels returns the 24 clock-face labels offered in the event options
// payload, "12:00 AM" through "11:00 PM".
func HourLabels() []string {
	labels := make([]string, 0, 24)
	for hour := 0; hour < 24; hour++ {
		h := hour % 12
		if h == 0 {
			h = 12
		}
		meridiem := "AM"
		if hour >= 12 {
			meridiem = "PM"
		}
		labels = append(labels, fmt.Sprintf("%d:00 %s", h, meridiem))
	}
	return labels
}

// FormatStartHour renders a day-of-week slot hour as zero-padded "HH:00".
func FormatStartHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
