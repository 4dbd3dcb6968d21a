package entity

// Space описывает учебное пространство из статического каталога.
// Каталог read-only: записи загружаются при старте и не изменяются.
type Space struct {
	ID          string   `json:"id" mapstructure:"id"`
	Name        string   `json:"name" mapstructure:"name"`
	Location    string   `json:"location" mapstructure:"location"`
	Description string   `json:"description" mapstructure:"description"`
	Price       float64  `json:"price" mapstructure:"price"`
	MainImage   string   `json:"main_image" mapstructure:"main_image"`
	Images      []string `json:"images" mapstructure:"images"`
	Amenities   []string `json:"amenities" mapstructure:"amenities"`
	Hours       string   `json:"hours" mapstructure:"hours"`
	TimeSlots   []string `json:"time_slots" mapstructure:"time_slots"`
}

// DefaultTimeSlot возвращает слот, предвыбранный по умолчанию
// (первый слот каталога, порядок каталога значим).
func (s *Space) DefaultTimeSlot() string {
	if len(s.TimeSlots) == 0 {
		return ""
	}
	return s.TimeSlots[0]
}

// HasTimeSlot проверяет, что метка слота принадлежит каталогу пространства.
func (s *Space) HasTimeSlot(label string) bool {
	for _, slot := range s.TimeSlots {
		if slot == label {
			return true
		}
	}
	return false
}
