package entities

// ShopState is one shop visit's inventory. A nil slot has been sold; slot
// positions hold until the shop is refreshed.
type ShopState struct {
	AvailableCharms      []*Charm      `json:"availableCharms"`
	AvailableConsumables []*Consumable `json:"availableConsumables"`
	AvailableBlessings   []*Blessing   `json:"availableBlessings"`
	RefreshCount         int           `json:"refreshCount"`
}

// Clone returns a deep copy
func (s *ShopState) Clone() *ShopState {
	if s == nil {
		return nil
	}
	return &ShopState{
		AvailableCharms:      clonePtrs(s.AvailableCharms),
		AvailableConsumables: clonePtrs(s.AvailableConsumables),
		AvailableBlessings:   clonePtrs(s.AvailableBlessings),
		RefreshCount:         s.RefreshCount,
	}
}

func clonePtrs[T any](in []*T) []*T {
	if in == nil {
		return nil
	}
	out := make([]*T, len(in))
	for i, p := range in {
		if p != nil {
			v := *p
			out[i] = &v
		}
	}
	return out
}
