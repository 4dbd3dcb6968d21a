// Package slot реализует чистую логику доступности слотов времени:
// разбор меток слотов и предикаты бронируемости. Пакет не владеет
// состоянием, текущий момент всегда передается параметром.
package slot

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind int

const (
	// KindRange — явный диапазон часов, разобранный из метки.
	KindRange Kind = iota
	// KindNamed — именованный слот из фиксированной таблицы.
	KindNamed
	// KindFullDay — слот на весь день, доступен всегда.
	KindFullDay
	// KindUnknown — нераспознанная метка. Деградирует до "доступно":
	// кривая метка никогда не должна блокировать бронирование.
	KindUnknown
)

// Window — окно слота в часах: [Start, End). End <= Start означает
// окно через полночь (ночные слоты).
type Window struct {
	Kind  Kind
	Start int
	End   int
}

var (
	parenRe = regexp.MustCompile(`\(([^)]+)\)`)
	clockRe = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::\d{2})?\s*(am|pm)?`)
)

var fullDayMarkers = []string{"full day", "all day", "24 hour"}

// ParseLabel разбирает свободнотекстовую метку слота по цепочке
// форматов: подподдиапазон в скобках ("Morning (8 AM - 12 PM)"),
// затем вся метка как диапазон ("9am - 1pm"), затем метки полного
// дня, затем таблица именованных слотов. Все, что не распознано,
// становится KindUnknown.
func ParseLabel(label string) Window {
	if m := parenRe.FindStringSubmatch(label); m != nil {
		if w, ok := parseRange(m[1]); ok {
			return w
		}
	}
	if strings.Contains(label, " - ") {
		if w, ok := parseRange(label); ok {
			return w
		}
	}

	lower := strings.ToLower(label)
	for _, marker := range fullDayMarkers {
		if strings.Contains(lower, marker) {
			return Window{Kind: KindFullDay, Start: 0, End: 24}
		}
	}

	if w, ok := namedWindow(label); ok {
		return w
	}

	return Window{Kind: KindUnknown, Start: 0, End: 24}
}

// namedWindow — фиксированная таблица именованных слотов и их окон
// "в процессе": Morning [6,12), Afternoon [12,18), Evening [17,23),
// ночные слоты [21,6) через полночь.
func namedWindow(label string) (Window, bool) {
	switch label {
	case "Morning":
		return Window{Kind: KindNamed, Start: 6, End: 12}, true
	case "Afternoon":
		return Window{Kind: KindNamed, Start: 12, End: 18}, true
	case "Evening":
		return Window{Kind: KindNamed, Start: 17, End: 23}, true
	case "Night Shift", "Night Owl Pass", "Night Pass":
		return Window{Kind: KindNamed, Start: 21, End: 6}, true
	}
	return Window{}, false
}

// parseRange разбирает "<start> - <end>" в 12-часовой записи.
func parseRange(s string) (Window, bool) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return Window{}, false
	}

	start, ok := parseClock(parts[0])
	if !ok {
		return Window{}, false
	}
	end, ok := parseClock(parts[1])
	if !ok {
		return Window{}, false
	}

	return Window{Kind: KindRange, Start: start, End: end}, true
}

// parseClock извлекает час из записи вида "8 AM", "12:30 pm", "9am".
// PM добавляет 12, кроме 12 PM; 12 AM становится 0.
func parseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, false
	}

	switch strings.ToLower(m[2]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	if hour > 23 {
		return 0, false
	}
	return hour, true
}

// AvailableAt сообщает, доступно ли окно в данный час сегодняшнего
// дня: слот идет прямо сейчас ([Start, End)) либо еще впереди
// (hour < Start). Слот, чье окно уже закрылось, недоступен.
func (w Window) AvailableAt(hour int) bool {
	switch w.Kind {
	case KindFullDay, KindUnknown:
		return true
	}

	if w.End <= w.Start {
		// Окно через полночь: до Start слот впереди, после Start —
		// в процессе. В любой час сегодняшнего дня он не истек.
		return true
	}

	if hour >= w.Start && hour < w.End {
		return true
	}
	return hour < w.Start
}
