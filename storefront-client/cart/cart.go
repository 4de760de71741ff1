package cart

import (
	"fmt"
	"sync"
	"time"

	"smarttech/pkg/logger"

	"github.com/google/uuid"
)

// lastAddedTTL - время, в течение которого витрина показывает
// всплывающее уведомление о последнем добавленном товаре
const lastAddedTTL = 3 * time.Second

// Item позиция корзины
// Позиции различаются парой (ProductID, Variation): один товар
// в разных вариациях лежит в корзине отдельными строками
type Item struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Variation string    `json:"variation,omitempty"`
}

// State сериализуемое состояние корзины
type State struct {
	Items []Item `json:"items"`
}

// Manager управляет корзиной покупателя
// Все операции потокобезопасны, каждое изменение сохраняется в Storage
type Manager struct {
	mu        sync.Mutex
	items     []Item
	storage   Storage
	lastAdded *Item
	resetTmr  *time.Timer
}

// NewManager создает менеджер корзины и восстанавливает
// сохраненное состояние из хранилища
func NewManager(storage Storage) (*Manager, error) {
	state, err := storage.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart state: %w", err)
	}

	return &Manager{
		items:   state.Items,
		storage: storage,
	}, nil
}

// AddItem добавляет товар в корзину
// Товар с той же вариацией объединяется с существующей позицией,
// увеличивая количество; иначе создается новая позиция
func (m *Manager) AddItem(item Item) error {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	merged := false
	for i := range m.items {
		if m.items[i].ProductID == item.ProductID && m.items[i].Variation == item.Variation {
			m.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}

	if !merged {
		m.items = append(m.items, item)
	}

	m.setLastAddedLocked(item)

	return m.saveLocked()
}

// RemoveItem удаляет все позиции товара независимо от вариации
func (m *Manager) RemoveItem(productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.items[:0]
	for _, item := range m.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	m.items = kept

	return m.saveLocked()
}

// SetQuantity выставляет количество для всех позиций товара
// Количество меньше либо равное нулю удаляет товар из корзины
func (m *Manager) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return m.RemoveItem(productID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ProductID == productID {
			m.items[i].Quantity = quantity
		}
	}

	return m.saveLocked()
}

// Clear очищает корзину
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = nil

	return m.saveLocked()
}

// Items возвращает копию позиций корзины
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}

// TotalItemCount возвращает суммарное количество единиц товара
func (m *Manager) TotalItemCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, item := range m.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice возвращает общую стоимость корзины
func (m *Manager) TotalPrice() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total float64
	for _, item := range m.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// LastAdded возвращает последний добавленный товар
// Через lastAddedTTL после добавления возвращает nil
func (m *Manager) LastAdded() *Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastAdded == nil {
		return nil
	}

	item := *m.lastAdded
	return &item
}

// setLastAddedLocked запоминает последний добавленный товар
// и взводит таймер его сброса. Вызывается под мьютексом
func (m *Manager) setLastAddedLocked(item Item) {
	m.lastAdded = &item

	if m.resetTmr != nil {
		m.resetTmr.Stop()
	}

	m.resetTmr = time.AfterFunc(lastAddedTTL, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.lastAdded = nil
	})
}

// saveLocked сохраняет состояние в хранилище. Вызывается под мьютексом
// Ошибка сохранения не откатывает изменение в памяти
func (m *Manager) saveLocked() error {
	if err := m.storage.Save(&State{Items: m.items}); err != nil {
		logger.Error().Err(err).Msg("failed to persist cart state")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
