package shop

import (
	"slices"

	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/blessings"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

// Result is the outcome of a purchase, sale or refresh. On failure Game and
// Shop are the inputs, untouched.
type Result struct {
	Success bool
	Message string
	Code    errors.Code
	Game    *entities.GameState
	Shop    *entities.ShopState
	// Amount is the money paid (purchase, refresh) or received (sale)
	Amount int
	// UsedVoucher is set when a refresh was paid with a shop voucher
	UsedVoucher bool
}

func reject(game *entities.GameState, shop *entities.ShopState, err *errors.Error) *Result {
	return &Result{Message: err.Message, Code: err.Code, Game: game, Shop: shop}
}

// slot returns the item at index, rejecting out-of-range and sold slots
func slot[T any](items []*T, index int, kind string) (*T, *errors.Error) {
	if index < 0 || index >= len(items) {
		return nil, errors.InvalidIndex("Invalid " + kind + " index")
	}
	if items[index] == nil {
		return nil, errors.InvalidIndex("Item already sold")
	}
	return items[index], nil
}

// PurchaseCharm buys the charm in shop slot index
func (s *Shop) PurchaseCharm(game *entities.GameState, shop *entities.ShopState, index int) *Result {
	item, err := slot(shop.AvailableCharms, index, "charm")
	if err != nil {
		return reject(game, shop, err)
	}
	if game.HasCharm(item.ID) {
		return reject(game, shop, errors.AlreadyOwned("Charm already owned"))
	}
	if game.FreeCharmSlots() == 0 {
		return reject(game, shop, errors.InsufficientResources("No charm slots available"))
	}
	price := CharmPrice(game, *item)
	if game.Money < price {
		return reject(game, shop, errors.InsufficientResources("Not enough money"))
	}

	g := game.Clone()
	g.Money -= price
	g.Charms = append(g.Charms, *item)
	sh := shop.Clone()
	sh.AvailableCharms[index] = nil

	s.notifyPurchase("charm", item.ID, price)
	return &Result{Success: true, Message: "Purchased " + item.Name, Game: g, Shop: sh, Amount: price}
}

// PurchaseConsumable buys the consumable in shop slot index
func (s *Shop) PurchaseConsumable(game *entities.GameState, shop *entities.ShopState, index int) *Result {
	item, err := slot(shop.AvailableConsumables, index, "consumable")
	if err != nil {
		return reject(game, shop, err)
	}
	if game.FreeConsumableSlots() == 0 {
		return reject(game, shop, errors.InsufficientResources("No consumable slots available"))
	}
	price := ConsumablePrice(game, *item)
	if game.Money < price {
		return reject(game, shop, errors.InsufficientResources("Not enough money"))
	}

	g := game.Clone()
	g.Money -= price
	g.Consumables = append(g.Consumables, *item)
	sh := shop.Clone()
	sh.AvailableConsumables[index] = nil

	s.notifyPurchase("consumable", item.ID, price)
	return &Result{Success: true, Message: "Purchased " + item.Name, Game: g, Shop: sh, Amount: price}
}

// PurchaseBlessing buys the blessing in shop slot index. The previous tier
// of its family must already be owned.
func (s *Shop) PurchaseBlessing(game *entities.GameState, shop *entities.ShopState, index int) *Result {
	item, err := slot(shop.AvailableBlessings, index, "blessing")
	if err != nil {
		return reject(game, shop, err)
	}
	if err := blessings.CheckPrerequisite(game, *item); err != nil {
		return reject(game, shop, err)
	}
	price := BlessingPrice(game)
	if game.Money < price {
		return reject(game, shop, errors.InsufficientResources("Not enough money"))
	}

	charged := game.Clone()
	charged.Money -= price
	g, err := blessings.ApplyPurchase(charged, *item)
	if err != nil {
		return reject(game, shop, err)
	}
	sh := shop.Clone()
	sh.AvailableBlessings[index] = nil

	s.notifyPurchase("blessing", item.ID, price)
	return &Result{Success: true, Message: "Purchased " + item.Name, Game: g, Shop: sh, Amount: price}
}

// SellCharm sells the owned charm at index
func (s *Shop) SellCharm(game *entities.GameState, shop *entities.ShopState, index int) *Result {
	if index < 0 || index >= len(game.Charms) {
		return reject(game, shop, errors.InvalidIndex("Invalid charm index"))
	}
	item := game.Charms[index]
	value := SellValue(game, CharmBasePrice(item.Rarity))

	g := game.Clone()
	g.Money += value
	g.Charms = slices.Delete(g.Charms, index, index+1)

	s.notifySale("charm", item.ID, value)
	return &Result{Success: true, Message: "Sold " + item.Name, Game: g, Shop: shop.Clone(), Amount: value}
}

// SellConsumable sells the owned consumable at index
func (s *Shop) SellConsumable(game *entities.GameState, shop *entities.ShopState, index int) *Result {
	if index < 0 || index >= len(game.Consumables) {
		return reject(game, shop, errors.InvalidIndex("Invalid consumable index"))
	}
	item := game.Consumables[index]
	value := SellValue(game, ConsumableBasePrice(item.Category))

	g := game.Clone()
	g.Money += value
	g.Consumables = slices.Delete(g.Consumables, index, index+1)

	s.notifySale("consumable", item.ID, value)
	return &Result{Success: true, Message: "Sold " + item.Name, Game: g, Shop: shop.Clone(), Amount: value}
}

// Refresh replaces the whole inventory. A shop voucher pays for it when one
// is held; otherwise it costs RefreshCost.
func (s *Shop) Refresh(game *entities.GameState, shop *entities.ShopState, src random.Source) *Result {
	if src == nil {
		return reject(game, shop, errors.InvalidArgument(errRandomRequired))
	}
	g := game.Clone()
	res := &Result{Success: true}
	if g.ShopVouchers > 0 {
		g.ShopVouchers--
		res.UsedVoucher = true
		res.Message = "Shop refreshed with a voucher"
	} else {
		cost := RefreshCost(game, shop.RefreshCount)
		if game.Money < cost {
			return reject(game, shop, errors.InsufficientResources("Not enough money"))
		}
		g.Money -= cost
		res.Amount = cost
		res.Message = "Shop refreshed"
	}

	sh, err := s.Generate(g, src)
	if err != nil {
		return reject(game, shop, errors.New(errors.GetCode(err), errors.GetMessage(err)))
	}
	sh.RefreshCount = shop.RefreshCount + 1
	res.Game = g
	res.Shop = sh
	return res
}

func (s *Shop) notifyPurchase(kind, id string, price int) {
	s.notifier.Notify(notify.EventItemPurchased, map[string]any{"kind": kind, "id": id, "price": price})
}

func (s *Shop) notifySale(kind, id string, value int) {
	s.notifier.Notify(notify.EventItemSold, map[string]any{"kind": kind, "id": id, "value": value})
}
