package format

import (
    "fmt"
    "strconv"
    "time"
)

// Delay formats the animation delay of the i-th card in steps of a tenth of
// a second, e.g. Delay(3) => "0.3s".
func Delay(i int) string {
    if i <= 0 {
        return "0s"
    }
    if i%10 == 0 {
        return strconv.Itoa(i/10) + "s"
    }
    return fmt.Sprintf("%d.%ds", i/10, i%10)
}

// Percent formats a proficiency label, e.g. Percent(95) => "95%".
func Percent(n int) string {
    return fmt.Sprintf("%d%%", n)
}

// Year returns the four digit year of t.
func Year(t time.Time) string {
    return strconv.Itoa(t.Year())
}

// Date formats time in a short form.
func Date(t time.Time) string {
    if t.IsZero() {
        return ""
    }
    return t.Format("Jan 2, 2006")
}
