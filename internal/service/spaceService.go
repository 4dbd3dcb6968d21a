package service

import (
	"context"
	"strings"

	"github.com/studyspot/studyspot/internal/entity"
)

type spaceService struct {
	spaces []entity.Space
	byID   map[string]*entity.Space
}

// NewSpaceService создает сервис над загруженным каталогом. Каталог
// неизменяем после старта, поэтому блокировок не требуется.
func NewSpaceService(spaces []entity.Space) SpaceService {
	s := &spaceService{
		spaces: spaces,
		byID:   make(map[string]*entity.Space, len(spaces)),
	}
	for i := range spaces {
		s.byID[spaces[i].ID] = &spaces[i]
	}
	return s
}

func (s *spaceService) GetAllSpaces(ctx context.Context) []entity.Space {
	out := make([]entity.Space, len(s.spaces))
	copy(out, s.spaces)
	return out
}

func (s *spaceService) GetSpace(ctx context.Context, id string) (*entity.Space, error) {
	space, ok := s.byID[id]
	if !ok {
		return nil, entity.ErrSpaceNotFound
	}
	return space, nil
}

// SearchSpaces фильтрует каталог по подстроке в имени, локации и
// удобствах, без учета регистра. Пустой запрос возвращает весь каталог.
func (s *spaceService) SearchSpaces(ctx context.Context, query string) []entity.Space {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.GetAllSpaces(ctx)
	}

	matched := make([]entity.Space, 0)
	for _, space := range s.spaces {
		if s.matches(&space, query) {
			matched = append(matched, space)
		}
	}
	return matched
}

func (s *spaceService) matches(space *entity.Space, query string) bool {
	if strings.Contains(strings.ToLower(space.Name), query) ||
		strings.Contains(strings.ToLower(space.Location), query) {
		return true
	}
	for _, amenity := range space.Amenities {
		if strings.Contains(strings.ToLower(amenity), query) {
			return true
		}
	}
	return false
}
