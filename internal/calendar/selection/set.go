// Package selection хранит выбор оператора в календаре и переходы по
// кликам, модификаторам и перетаскиванию.
package selection

import "sort"

// Kind вид выбранного элемента
type Kind string

const (
	KindResource    Kind = "resource"
	KindDate        Kind = "date"
	KindReservation Kind = "reservation"
	KindCell        Kind = "cell"
)

// ParseKind проверяет имя вида
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindResource, KindDate, KindReservation, KindCell:
		return k, nil
	}
	return "", ErrUnknownKind
}

// Item выбранный элемент
// Для ячейки заполнены ResourceKey и DateKey, Key = "resource|date"
type Item struct {
	Kind        Kind   `json:"kind"`
	Key         string `json:"key"`
	ResourceKey string `json:"resourceKey,omitempty"`
	DateKey     string `json:"dateKey,omitempty"`
}

func Resource(id string) Item    { return Item{Kind: KindResource, Key: id} }
func Date(key string) Item       { return Item{Kind: KindDate, Key: key} }
func Reservation(id string) Item { return Item{Kind: KindReservation, Key: id} }

func Cell(resourceID, dateKey string) Item {
	return Item{Kind: KindCell, Key: resourceID + "|" + dateKey, ResourceKey: resourceID, DateKey: dateKey}
}

type itemID struct {
	kind Kind
	key  string
}

func (i Item) id() itemID { return itemID{kind: i.Kind, key: i.Key} }

// Set множество элементов без дублей по (вид, ключ)
// Сохраняет порядок добавления
type Set struct {
	items []Item
	index map[itemID]int
}

func NewSet() *Set {
	return &Set{index: make(map[itemID]int)}
}

func (s *Set) Len() int { return len(s.items) }

func (s *Set) Has(it Item) bool {
	_, ok := s.index[it.id()]
	return ok
}

// Add добавляет элемент, если его еще нет
func (s *Set) Add(it Item) bool {
	if s.Has(it) {
		return false
	}
	s.index[it.id()] = len(s.items)
	s.items = append(s.items, it)
	return true
}

// Remove удаляет элемент
func (s *Set) Remove(it Item) bool {
	pos, ok := s.index[it.id()]
	if !ok {
		return false
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	s.reindex()
	return true
}

// Toggle переключает принадлежность элемента
// Возвращает true, если элемент теперь выбран
func (s *Set) Toggle(it Item) bool {
	if s.Remove(it) {
		return false
	}
	s.Add(it)
	return true
}

// Clear очищает множество полностью
func (s *Set) Clear() {
	s.items = nil
	s.index = make(map[itemID]int)
}

// ReplaceKind заменяет все элементы вида kind на items
func (s *Set) ReplaceKind(kind Kind, items ...Item) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Kind != kind {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.reindex()

	for _, it := range items {
		if it.Kind == kind {
			s.Add(it)
		}
	}
}

// OfKind элементы вида kind в порядке добавления
func (s *Set) OfKind(kind Kind) []Item {
	out := make([]Item, 0)
	for _, it := range s.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Keys отсортированные ключи вида kind
func (s *Set) Keys(kind Kind) []string {
	keys := make([]string, 0)
	for _, it := range s.items {
		if it.Kind == kind {
			keys = append(keys, it.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

// Items копия всех элементов в порядке добавления
func (s *Set) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Set) reindex() {
	s.index = make(map[itemID]int, len(s.items))
	for i, it := range s.items {
		s.index[it.id()] = i
	}
}
