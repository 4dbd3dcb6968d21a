package service

import (
	"context"
	"sort"
	"time"

	"github.com/studyspot/studyspot/internal/entity"
)

type SortMode string

const (
	// SortClosest — предстоящие брони по близости даты к сегодня.
	SortClosest SortMode = "closest"
	// SortNewest — предстоящие брони по убыванию даты.
	SortNewest SortMode = "newest"
)

// DateGroup — брони одной даты с флагами отображения.
type DateGroup struct {
	Date     string           `json:"date"`
	IsToday  bool             `json:"is_today"`
	IsPast   bool             `json:"is_past"`
	Bookings []entity.Booking `json:"bookings"`
}

// BookingOverview — готовая к отображению структура списка броней.
type BookingOverview struct {
	Total  int         `json:"total"`
	Groups []DateGroup `json:"groups"`
}

// EffectiveSortMode разрешает пустой режим сортировки по дефолтной
// связке фильтра и сортировки: с фильтром по дате — newest, без —
// closest. Явно заданный режим никогда не переопределяется.
func EffectiveSortMode(requested SortMode, filterDate string) SortMode {
	if requested == SortClosest || requested == SortNewest {
		return requested
	}
	if filterDate != "" {
		return SortNewest
	}
	return SortClosest
}

// BuildOverview — чистая функция view-model: фильтр по точной дате,
// разделение на предстоящие (date >= today) и прошедшие, сортировка,
// конкатенация (предстоящие всегда перед прошедшими) и группировка по
// дате в порядке первого появления.
func BuildOverview(bookings []entity.Booking, filterDate string, mode SortMode, today string) *BookingOverview {
	filtered := bookings
	if filterDate != "" {
		filtered = make([]entity.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Date == filterDate {
				filtered = append(filtered, b)
			}
		}
	}

	var upcoming, past []entity.Booking
	for _, b := range filtered {
		// ISO-даты сравниваются лексикографически корректно.
		if b.Date >= today {
			upcoming = append(upcoming, b)
		} else {
			past = append(past, b)
		}
	}

	switch mode {
	case SortNewest:
		sort.SliceStable(upcoming, func(i, j int) bool {
			return upcoming[i].Date > upcoming[j].Date
		})
	default:
		sort.SliceStable(upcoming, func(i, j int) bool {
			return dateDistance(upcoming[i].Date, today) < dateDistance(upcoming[j].Date, today)
		})
	}

	// Прошедшие всегда по убыванию даты, независимо от режима.
	sort.SliceStable(past, func(i, j int) bool {
		return past[i].Date > past[j].Date
	})

	ordered := append(upcoming, past...)

	overview := &BookingOverview{Total: len(ordered)}
	index := make(map[string]int)
	for _, b := range ordered {
		i, ok := index[b.Date]
		if !ok {
			i = len(overview.Groups)
			index[b.Date] = i
			overview.Groups = append(overview.Groups, DateGroup{
				Date:    b.Date,
				IsToday: b.Date == today,
				IsPast:  b.Date < today,
			})
		}
		overview.Groups[i].Bookings = append(overview.Groups[i].Bookings, b)
	}

	return overview
}

// dateDistance — абсолютное расстояние в днях между датой и сегодня.
// Неразбираемые даты тонут в конце порядка.
func dateDistance(date, today string) int {
	d, err1 := time.Parse(entity.DateLayout, date)
	t, err2 := time.Parse(entity.DateLayout, today)
	if err1 != nil || err2 != nil {
		return 1 << 30
	}

	days := int(d.Sub(t).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

func (s *bookingService) GetOverview(ctx context.Context, filterDate string, mode SortMode, today string) *BookingOverview {
	return BuildOverview(s.bookings.GetAll(ctx), filterDate, mode, today)
}
