package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasur/aquasur-backend/pkg/money"
)

func snapshot(name string, price int64) ProductSnapshot {
	return ProductSnapshot{
		ProductID: uuid.New(),
		Name:      name,
		UnitPrice: money.FromInt(price),
	}
}

func TestAddItemMergesIdenticalSelections(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Piscina Premium 6x3", 1_000)

	first := c.AddItem(product, nil)
	second := c.AddItem(product, nil)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, first.LineID, second.LineID)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddItemDistinctAddonSetsStayDistinct(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Spa Hidromasaje", 2_500_000)
	heater := AddonSelection{AddonID: uuid.New(), Name: "Calefactor", UnitPrice: money.FromInt(350_000)}

	plain := c.AddItem(product, nil)
	heated := c.AddItem(product, []AddonSelection{heater})

	require.Len(t, c.Lines, 2)
	assert.NotEqual(t, plain.LineID, heated.LineID)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 1, c.Lines[1].Quantity)
}

func TestAddItemAddonOrderDoesNotSplitLines(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Piscina Familiar", 900_000)
	pump := AddonSelection{AddonID: uuid.New(), Name: "Bomba", UnitPrice: money.FromInt(120_000)}
	cover := AddonSelection{AddonID: uuid.New(), Name: "Cobertor", UnitPrice: money.FromInt(45_000)}

	c.AddItem(product, []AddonSelection{pump, cover})
	c.AddItem(product, []AddonSelection{cover, pump})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddItemDifferentAddonQuantityIsDifferentLine(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Piscina Familiar", 900_000)
	addonID := uuid.New()
	single := AddonSelection{AddonID: addonID, Name: "Foco LED", UnitPrice: money.FromInt(30_000), Quantity: 1}
	double := AddonSelection{AddonID: addonID, Name: "Foco LED", UnitPrice: money.FromInt(30_000), Quantity: 2}

	c.AddItem(product, []AddonSelection{single})
	c.AddItem(product, []AddonSelection{double})

	require.Len(t, c.Lines, 2)
}

func TestAddItemNormalizesAddonQuantities(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Spa Compacto", 1_800_000)
	addonID := uuid.New()

	line := c.AddItem(product, []AddonSelection{
		{AddonID: addonID, Name: "Escalera", UnitPrice: money.FromInt(80_000), Quantity: 0},
		{AddonID: addonID, Name: "Escalera", UnitPrice: money.FromInt(80_000), Quantity: 2},
	})

	require.Len(t, line.Addons, 1)
	assert.Equal(t, 3, line.Addons[0].Quantity)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	t.Parallel()

	c := New()
	line := c.AddItem(snapshot("Piscina Infantil", 250_000), nil)

	updated, ok := c.UpdateQuantity(line.LineID, 0)
	require.True(t, ok)
	assert.Equal(t, 1, updated.Quantity)

	updated, ok = c.UpdateQuantity(line.LineID, -4)
	require.True(t, ok)
	assert.Equal(t, 1, updated.Quantity)

	updated, ok = c.UpdateQuantity(line.LineID, 5)
	require.True(t, ok)
	assert.Equal(t, 5, updated.Quantity)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	t.Parallel()

	c := New()
	c.AddItem(snapshot("Piscina Infantil", 250_000), nil)

	_, ok := c.UpdateQuantity(uuid.New(), 3)
	assert.False(t, ok)
}

func TestRemoveLineAndClear(t *testing.T) {
	t.Parallel()

	c := New()
	first := c.AddItem(snapshot("Piscina A", 100), nil)
	c.AddItem(snapshot("Piscina B", 200), nil)

	assert.False(t, c.RemoveLine(uuid.New()))
	require.Len(t, c.Lines, 2)

	assert.True(t, c.RemoveLine(first.LineID))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "Piscina B", c.Lines[0].Product.Name)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestTotalSumsLinesAndAddons(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Piscina Estandar", 1_000)
	line := c.AddItem(product, []AddonSelection{
		{AddonID: uuid.New(), Name: "Filtro", UnitPrice: money.FromInt(500), Quantity: 1},
		{AddonID: uuid.New(), Name: "Red", UnitPrice: money.FromInt(100), Quantity: 1},
	})
	_, ok := c.UpdateQuantity(line.LineID, 2)
	require.True(t, ok)

	// 1000 * 2 + 500 + 100
	assert.Equal(t, "2600", c.Total().String())
	assert.Equal(t, "2.600", money.Format(c.Total()))
}

func TestTotalIsRecomputedNotCached(t *testing.T) {
	t.Parallel()

	c := New()
	product := snapshot("Spa Doble", 2_000)
	line := c.AddItem(product, nil)

	assert.Equal(t, "2000", c.Total().String())

	_, ok := c.UpdateQuantity(line.LineID, 3)
	require.True(t, ok)
	assert.Equal(t, "6000", c.Total().String())
	assert.Equal(t, "6000", c.Total().String())

	c.RemoveLine(line.LineID)
	assert.True(t, c.Total().IsZero())
}
