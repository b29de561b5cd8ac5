package services

import "time"

// EthiopianMonths holds the thirteen month names, 1-indexed like the
// calendar itself (index 0 unused). The 13th month Pagume has 5 days,
// 6 in leap years.
var EthiopianMonths = [...]string{
	"",
	"መስከረም",
	"ጥቅምት",
	"ህዳር",
	"ታህሳስ",
	"ጥር",
	"የካቲት",
	"መጋቢት",
	"ሚያዚያ",
	"ግንቦት",
	"ሰኔ",
	"ሐምሌ",
	"ነሐሴ",
	"ጳጉሜ",
}

type EthiopianDate struct {
	Year  int
	Month int
	Day   int
}

func (d EthiopianDate) MonthName() string {
	if d.Month < 1 || d.Month >= len(EthiopianMonths) {
		return ""
	}
	return EthiopianMonths[d.Month]
}

// MonthIndex returns the 1-based calendar position of a month name, or
// -1 when the name is unknown.
func MonthIndex(name string) int {
	for i := 1; i < len(EthiopianMonths); i++ {
		if EthiopianMonths[i] == name {
			return i
		}
	}
	return -1
}

// Julian day offset of the Amete Mihret era (Meskerem 1 of year 1
// falls on JDN 1724221 = offset + 365).
const ethiopicEpoch = 1723856

func gregorianToJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

// ToEthiopian converts a Gregorian calendar date to the Ethiopian
// calendar.
func ToEthiopian(t time.Time) EthiopianDate {
	jdn := gregorianToJDN(t.Year(), int(t.Month()), t.Day())

	r := (jdn - ethiopicEpoch) % 1461
	n := r%365 + 365*(r/1460)

	return EthiopianDate{
		Year:  4*((jdn-ethiopicEpoch)/1461) + r/365 - r/1460,
		Month: n/30 + 1,
		Day:   n%30 + 1,
	}
}
