package sqedomain

import (
	"encoding/binary"
	"encoding/hex"
)

// MaxOpenOrderSlots is the capacity of a pool's open-order slot table.
const MaxOpenOrderSlots = 128

// OrderKey identifies a resting order on the external book. The price sits in
// the upper half so keys sort by price lexicographically.
type OrderKey [16]byte

// NewOrderKey builds a key from a price and a sequence number.
func NewOrderKey(price, seq uint64) OrderKey {
	var key OrderKey
	binary.BigEndian.PutUint64(key[:8], price)
	binary.BigEndian.PutUint64(key[8:], seq)
	return key
}

// String returns the hex representation of the key.
func (k OrderKey) String() string {
	return hex.EncodeToString(k[:])
}

// MarshalText implements encoding.TextMarshaler.
func (k OrderKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *OrderKey) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	copy(k[:], raw)
	return nil
}

// RestingOrder is one standing order the pool has placed on the external
// book. Sourced read-only from a book snapshot; never mutated by this engine.
type RestingOrder struct {
	Key           OrderKey `json:"key"`
	Price         uint64   `json:"price"`
	ClientOrderID uint64   `json:"client_order_id"`
}

// OrderBookSide is one side of an external book snapshot, keyed by order key.
type OrderBookSide map[OrderKey]RestingOrder

// FindByKey looks up an order. A miss means the order was already filled or
// cancelled and is simply excluded, not an error.
func (s OrderBookSide) FindByKey(key OrderKey) (RestingOrder, bool) {
	order, found := s[key]
	return order, found
}

// OpenOrderSlots is the pool's open-order slot table: a 128-slot bitmap of
// free/occupied slots, a bid/ask bitmap, and the order key per slot, plus the
// totals the pool has committed to the book on each side.
type OpenOrderSlots struct {
	// FreeSlotBits has bit i set when slot i is free.
	FreeSlotBits [2]uint64 `json:"free_slot_bits"`
	// IsBidBits has bit i set when slot i holds a bid.
	IsBidBits [2]uint64 `json:"is_bid_bits"`

	Orders [MaxOpenOrderSlots]OrderKey `json:"orders"`

	// NativePcTotal and NativeCoinTotal are the committed-but-unfilled
	// amounts resting on the book, per side, in native atoms.
	NativePcTotal   uint64 `json:"native_pc_total"`
	NativeCoinTotal uint64 `json:"native_coin_total"`
}

// IsFree reports whether slot i holds no order.
func (o *OpenOrderSlots) IsFree(i int) bool {
	return o.FreeSlotBits[i/64]&(1<<(uint(i)%64)) != 0
}

// IsBid reports whether slot i holds a bid.
func (o *OpenOrderSlots) IsBid(i int) bool {
	return o.IsBidBits[i/64]&(1<<(uint(i)%64)) != 0
}

// SetSlot occupies slot i with the given key and side. Test and fixture
// helper; production slot tables come from the external program.
func (o *OpenOrderSlots) SetSlot(i int, key OrderKey, isBid bool) {
	o.FreeSlotBits[i/64] &^= 1 << (uint(i) % 64)
	if isBid {
		o.IsBidBits[i/64] |= 1 << (uint(i) % 64)
	} else {
		o.IsBidBits[i/64] &^= 1 << (uint(i) % 64)
	}
	o.Orders[i] = key
}

// NewOpenOrderSlots returns a table with every slot free.
func NewOpenOrderSlots() *OpenOrderSlots {
	return &OpenOrderSlots{
		FreeSlotBits: [2]uint64{^uint64(0), ^uint64(0)},
	}
}
