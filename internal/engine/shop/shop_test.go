package shop_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bbeaudet-dev/rollio-sub001/internal/catalog"
	"github.com/bbeaudet-dev/rollio-sub001/internal/engine/shop"
	"github.com/bbeaudet-dev/rollio-sub001/internal/entities"
	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
	"github.com/bbeaudet-dev/rollio-sub001/internal/notify"
	"github.com/bbeaudet-dev/rollio-sub001/internal/pkg/random"
)

type ShopTestSuite struct {
	suite.Suite
	catalog  *catalog.Catalog
	shop     *shop.Shop
	recorder *notify.Recorder
}

func TestShopSuite(t *testing.T) {
	suite.Run(t, new(ShopTestSuite))
}

func (s *ShopTestSuite) SetupTest() {
	s.catalog = catalog.Default()
	s.recorder = &notify.Recorder{}
	sh, err := shop.New(&shop.Config{Catalog: s.catalog, Notifier: s.recorder})
	s.Require().NoError(err)
	s.shop = sh
}

func (s *ShopTestSuite) charm(id string) entities.Charm {
	def, ok := s.catalog.Charm(id)
	s.Require().True(ok)
	return def.NewCharm()
}

func (s *ShopTestSuite) consumable(id string) entities.Consumable {
	def, ok := s.catalog.Consumable(id)
	s.Require().True(ok)
	return def.NewConsumable()
}

func (s *ShopTestSuite) blessing(id string) entities.Blessing {
	def, ok := s.catalog.Blessing(id)
	s.Require().True(ok)
	return def.NewBlessing()
}

func (s *ShopTestSuite) generate(game *entities.GameState, src random.Source) *entities.ShopState {
	inv, err := s.shop.Generate(game, src)
	s.Require().NoError(err)
	return inv
}

func (s *ShopTestSuite) TestNewRequiresCatalog() {
	_, err := shop.New(&shop.Config{})
	s.Error(err)
}

func (s *ShopTestSuite) TestGenerateCounts() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	inv := s.generate(game, random.NewSeeded(1))
	s.Len(inv.AvailableCharms, shop.BaseCharmCount)
	s.Len(inv.AvailableConsumables, shop.BaseConsumableCount)
	s.Len(inv.AvailableBlessings, shop.BaseBlessingCount)
	s.Zero(inv.RefreshCount)
	s.Contains(s.recorder.Events(), notify.EventShopGenerated)

	game.Blessings = append(game.Blessings, s.blessing("bazaar1"))
	inv = s.generate(game, random.NewSeeded(1))
	s.Len(inv.AvailableCharms, shop.BaseCharmCount+1)
	s.Len(inv.AvailableConsumables, shop.BaseConsumableCount+1)
	s.Len(inv.AvailableBlessings, shop.BaseBlessingCount)
}

func (s *ShopTestSuite) TestGenerateSignalsEveryItem() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	inv := s.generate(game, random.NewSeeded(2))

	kinds := map[string]int{}
	for _, sig := range s.recorder.Signals() {
		if sig.Event == notify.EventItemGenerated {
			kinds[sig.Payload["kind"].(string)]++
		}
	}
	s.Equal(len(inv.AvailableCharms), kinds["charm"])
	s.Equal(len(inv.AvailableConsumables), kinds["consumable"])
	s.Equal(len(inv.AvailableBlessings), kinds["blessing"])
}

func (s *ShopTestSuite) TestRequiresRandomSource() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	game.Money = 20

	inv, err := s.shop.Generate(game, nil)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Nil(inv)

	sh := s.generate(game, random.NewSeeded(1))
	res := s.shop.Refresh(game, sh, nil)
	s.False(res.Success)
	s.Equal(errors.CodeInvalidArgument, res.Code)
	s.Equal("Random source is required", res.Message)
	s.Same(game, res.Game)
	s.Same(sh, res.Shop)
	s.Equal(20, game.Money)
}

func (s *ShopTestSuite) TestGenerateExcludesOwnedAndNeverRepeats() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	game.Charms = []entities.Charm{s.charm("flopShield"), s.charm("scoreMultiplier")}
	src := random.NewSeeded(7)

	for range 500 {
		inv := s.generate(game, src)
		seen := map[string]bool{}
		for _, c := range inv.AvailableCharms {
			s.NotEqual("flopShield", c.ID)
			s.NotEqual("scoreMultiplier", c.ID)
			s.False(seen[c.ID], "duplicate %s", c.ID)
			seen[c.ID] = true
		}
	}
}

func (s *ShopTestSuite) TestGenerateFallsBackToNonEmptyBucket() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	for _, def := range s.catalog.CharmsByRarity(entities.RarityCommon) {
		game.Charms = append(game.Charms, def.NewCharm())
	}
	game.CharmSlots = len(game.Charms)

	// tier draw 0.1 lands on the empty common bucket
	inv := s.generate(game, random.NewSequence(0.1))
	s.Require().Len(inv.AvailableCharms, shop.BaseCharmCount)
	for _, c := range inv.AvailableCharms {
		s.NotEqual(entities.RarityCommon, c.Rarity)
	}
}

func (s *ShopTestSuite) TestGenerateStopsWhenPoolRunsOut() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	defs := s.catalog.Charms()
	for _, def := range defs[:len(defs)-2] {
		game.Charms = append(game.Charms, def.NewCharm())
	}
	inv := s.generate(game, random.NewSeeded(3))
	s.Len(inv.AvailableCharms, 2)
}

func (s *ShopTestSuite) TestCharmRarityDistribution() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	src := random.NewSeeded(42)
	counts := map[entities.Rarity]int{}
	total := 0
	for range 10000 {
		for _, c := range s.generate(game, src).AvailableCharms {
			counts[c.Rarity]++
			total++
		}
	}

	want := map[entities.Rarity]float64{
		entities.RarityCommon:    0.60,
		entities.RarityUncommon:  0.30,
		entities.RarityRare:      0.09,
		entities.RarityLegendary: 0.01,
	}
	for r, p := range want {
		s.InDelta(p, float64(counts[r])/float64(total), 0.015, "rarity %s", r)
	}
}

func (s *ShopTestSuite) TestWeights() {
	charmWeights := shop.CharmRarityWeights()
	s.InDelta(0.60, charmWeights[entities.RarityCommon], 1e-9)
	s.InDelta(0.01, charmWeights[entities.RarityLegendary], 1e-9)

	total := 0.0
	for _, w := range shop.ConsumableCategoryWeights() {
		total += w
	}
	s.InDelta(1.0, total, 1e-9)
	s.InDelta(0.50, shop.ConsumableCategoryWeights()[entities.CategoryWhim], 1e-9)
}

func (s *ShopTestSuite) TestBlessingTierGating() {
	src := random.NewSeeded(11)
	game := entities.NewGameState(entities.DifficultyPlastic)
	for range 2000 {
		for _, b := range s.generate(game, src).AvailableBlessings {
			s.Equal(1, b.Tier, "offered %s without its prerequisite", b.ID)
		}
	}

	game.Blessings = []entities.Blessing{s.blessing("merchant1")}
	sawTier2 := false
	for range 2000 {
		for _, b := range s.generate(game, src).AvailableBlessings {
			s.NotEqual("merchant1", b.ID)
			s.NotEqual("merchant3", b.ID)
			if b.ID == "merchant2" {
				sawTier2 = true
			}
		}
	}
	s.True(sawTier2)
}

func (s *ShopTestSuite) TestPurchaseCharmWithDiscount() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	game.Blessings = []entities.Blessing{s.blessing("merchant1")}
	piggy := s.charm("piggyBank")
	inv := &entities.ShopState{AvailableCharms: []*entities.Charm{&piggy}}

	res := s.shop.PurchaseCharm(game, inv, 0)
	s.Require().True(res.Success, res.Message)
	s.Equal(4, res.Amount)
	s.Equal(6, res.Game.Money)
	s.True(res.Game.HasCharm("piggyBank"))
	s.Nil(res.Shop.AvailableCharms[0])

	s.Equal(10, game.Money)
	s.NotNil(inv.AvailableCharms[0])

	again := s.shop.PurchaseCharm(res.Game, res.Shop, 0)
	s.False(again.Success)
	s.Equal("Item already sold", again.Message)
	s.Equal(errors.CodeInvalidIndex, again.Code)
}

func (s *ShopTestSuite) TestPurchaseConsumableFullSlots() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	game.Consumables = []entities.Consumable{s.consumable("chisel"), s.consumable("voucher")}
	echo := s.consumable("echo")
	inv := &entities.ShopState{AvailableConsumables: []*entities.Consumable{&echo}}
	before := game.Clone()

	res := s.shop.PurchaseConsumable(game, inv, 0)
	s.False(res.Success)
	s.Equal("No consumable slots available", res.Message)
	s.Equal(errors.CodeInsufficientResources, res.Code)
	s.Same(game, res.Game)
	s.Same(inv, res.Shop)
	s.Equal(before, game)
}

func (s *ShopTestSuite) TestPurchaseRejections() {
	base := func() *entities.GameState { return entities.NewGameState(entities.DifficultyPlastic) }
	legendary := s.charm("goldenGoose")
	piggy := s.charm("piggyBank")

	tests := []struct {
		name    string
		game    func() *entities.GameState
		inv     *entities.ShopState
		index   int
		message string
		code    errors.Code
	}{
		{
			name:    "index out of range",
			game:    base,
			inv:     &entities.ShopState{AvailableCharms: []*entities.Charm{&piggy}},
			index:   3,
			message: "Invalid charm index",
			code:    errors.CodeInvalidIndex,
		},
		{
			name: "not enough money",
			game: func() *entities.GameState {
				g := base()
				g.Money = 9
				return g
			},
			inv:     &entities.ShopState{AvailableCharms: []*entities.Charm{&legendary}},
			message: "Not enough money",
			code:    errors.CodeInsufficientResources,
		},
		{
			name: "already owned",
			game: func() *entities.GameState {
				g := base()
				g.Charms = []entities.Charm{piggy}
				return g
			},
			inv:     &entities.ShopState{AvailableCharms: []*entities.Charm{&piggy}},
			message: "Charm already owned",
			code:    errors.CodeAlreadyOwned,
		},
		{
			name: "no charm slots",
			game: func() *entities.GameState {
				g := base()
				g.CharmSlots = 1
				g.Charms = []entities.Charm{legendary}
				return g
			},
			inv:     &entities.ShopState{AvailableCharms: []*entities.Charm{&piggy}},
			message: "No charm slots available",
			code:    errors.CodeInsufficientResources,
		},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			game := tt.game()
			before := game.Clone()
			res := s.shop.PurchaseCharm(game, tt.inv, tt.index)
			s.False(res.Success)
			s.Equal(tt.message, res.Message)
			s.Equal(tt.code, res.Code)
			s.Equal(before, res.Game)
		})
	}
}

func (s *ShopTestSuite) TestPurchaseBlessing() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	tier2 := s.blessing("charmSlots2")
	inv := &entities.ShopState{AvailableBlessings: []*entities.Blessing{&tier2}}

	res := s.shop.PurchaseBlessing(game, inv, 0)
	s.False(res.Success)
	s.Equal(errors.CodeFailedPrecondition, res.Code)

	game.Blessings = []entities.Blessing{s.blessing("charmSlots1")}
	res = s.shop.PurchaseBlessing(game, inv, 0)
	s.Require().True(res.Success, res.Message)
	s.Equal(5, res.Game.Money)
	s.Equal(5, res.Game.CharmSlots)
	s.True(res.Game.HasBlessing("charmSlots2"))
}

func (s *ShopTestSuite) TestDifficultyPricing() {
	game := entities.NewGameState(entities.DifficultyDiamond)
	s.Equal(6, shop.CharmPrice(game, s.charm("piggyBank"))) // ceil(4*1.5)
	s.Equal(8, shop.BlessingPrice(game))                      // ceil(5*1.5)

	game.Blessings = []entities.Blessing{s.blessing("merchant1"), s.blessing("bazaar3")}
	s.Equal(5, shop.CharmPrice(game, s.charm("piggyBank"))) // ceil(4*1.5*0.8)
}

func (s *ShopTestSuite) TestSell() {
	game := entities.NewGameState(entities.DifficultyGold)
	game.Charms = []entities.Charm{s.charm("piggyBank"), s.charm("goldenGoose")}
	game.Consumables = []entities.Consumable{s.consumable("slotExpansion")}

	res := s.shop.SellCharm(game, nil, 1)
	s.Require().True(res.Success)
	s.Equal(5, res.Amount)
	s.Equal(15, res.Game.Money)
	s.Len(res.Game.Charms, 1)
	s.Len(game.Charms, 2)

	res = s.shop.SellConsumable(game, nil, 0)
	s.Require().True(res.Success)
	s.Equal(3, res.Amount)

	game.Blessings = []entities.Blessing{s.blessing("merchant1"), s.blessing("merchant2")}
	res = s.shop.SellCharm(game, nil, 1)
	s.Equal(12, res.Amount) // ceil(10*1.2), discount ignored

	res = s.shop.SellConsumable(game, nil, 4)
	s.False(res.Success)
	s.Equal("Invalid consumable index", res.Message)
}

func (s *ShopTestSuite) TestRefresh() {
	game := entities.NewGameState(entities.DifficultyPlastic)
	game.Money = 20
	inv := s.generate(game, random.NewSeeded(5))

	first := s.shop.Refresh(game, inv, random.NewSeeded(6))
	s.Require().True(first.Success)
	s.Equal(5, first.Amount)
	s.Equal(15, first.Game.Money)
	s.Equal(1, first.Shop.RefreshCount)

	second := s.shop.Refresh(first.Game, first.Shop, random.NewSeeded(7))
	s.Require().True(second.Success)
	s.Equal(7, second.Amount) // ceil(5*1.25)
	s.Equal(2, second.Shop.RefreshCount)

	broke := second.Game.Clone()
	broke.Money = 3
	res := s.shop.Refresh(broke, second.Shop, random.NewSeeded(8))
	s.False(res.Success)
	s.Equal("Not enough money", res.Message)
	s.Same(second.Shop, res.Shop)

	broke.ShopVouchers = 1
	res = s.shop.Refresh(broke, second.Shop, random.NewSeeded(8))
	s.Require().True(res.Success)
	s.True(res.UsedVoucher)
	s.Equal(3, res.Game.Money)
	s.Zero(res.Game.ShopVouchers)
	s.Equal(3, res.Shop.RefreshCount)
}
