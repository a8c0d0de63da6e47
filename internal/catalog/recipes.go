package catalog

import (
	"errors"
	"fmt"
)

// RecipeItem is one input requirement of a Recipe.
type RecipeItem struct {
	Item     ObjectType `json:"item" jsonschema:"title=Required item type"`
	Quantity uint32     `json:"quantity" jsonschema:"title=Required quantity"`
}

// Recipe is a static, process-wide crafting definition.
type Recipe struct {
	Product ObjectType   `json:"product" jsonschema:"title=Crafted object type"`
	Amount  uint32       `json:"amount" jsonschema:"title=Amount of product produced per craft"`
	Items   []RecipeItem `json:"items" jsonschema:"title=Required inputs"`
	ByHand  bool         `json:"byHand" jsonschema:"description=True if the recipe needs no workbench or tool"`
}

// ErrUnknownRecipe is returned when no recipe is published for a product.
var ErrUnknownRecipe = errors.New("catalog: unknown recipe")

func mustDefineRecipe(r Recipe) Recipe {
	if r.Product == "" {
		panic("catalog: recipe product must not be empty")
	}
	if r.Amount == 0 {
		panic(fmt.Sprintf("catalog: recipe for %s must produce a positive amount", r.Product))
	}
	if len(r.Items) == 0 {
		panic(fmt.Sprintf("catalog: recipe for %s must require at least one input", r.Product))
	}
	if _, err := Lookup(r.Product); err != nil {
		panic(fmt.Sprintf("catalog: recipe product %s has no catalog entry", r.Product))
	}
	for _, item := range r.Items {
		if item.Quantity == 0 {
			panic(fmt.Sprintf("catalog: recipe for %s has a zero-quantity input %s", r.Product, item.Item))
		}
		if _, err := Lookup(item.Item); err != nil {
			panic(fmt.Sprintf("catalog: recipe for %s requires unknown input %s", r.Product, item.Item))
		}
	}
	return r
}

var recipes = buildRecipes()

func buildRecipes() map[ObjectType]Recipe {
	defs := []Recipe{
		// The canonical recipe exercised by the concrete craft scenarios.
		mustDefineRecipe(Recipe{
			Product: TypeWattleWall,
			Amount:  1,
			Items:   []RecipeItem{{Item: TypeStick, Quantity: 10}},
			ByHand:  true,
		}),
		mustDefineRecipe(Recipe{
			Product: TypePlank,
			Amount:  1,
			Items:   []RecipeItem{{Item: TypeWood, Quantity: 2}},
			ByHand:  true,
		}),
		mustDefineRecipe(Recipe{
			Product: TypeBrick,
			Amount:  1,
			Items:   []RecipeItem{{Item: TypeClay, Quantity: 3}},
			ByHand:  false,
		}),
		mustDefineRecipe(Recipe{
			Product: TypeBread,
			Amount:  1,
			Items:   []RecipeItem{{Item: TypeWheat, Quantity: 4}},
			ByHand:  false,
		}),
	}

	out := make(map[ObjectType]Recipe, len(defs))
	for _, r := range defs {
		out[r.Product] = r
	}
	return out
}

// RecipeFor returns the published recipe for a product type.
func RecipeFor(product ObjectType) (Recipe, error) {
	r, ok := recipes[product]
	if !ok {
		return Recipe{}, fmt.Errorf("%w: %s", ErrUnknownRecipe, product)
	}
	return r, nil
}

// Recipes returns every published recipe, sorted by product id.
func Recipes() []Recipe {
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r)
	}
	sortRecipesByProduct(out)
	return out
}

func sortRecipesByProduct(rs []Recipe) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j].Product < rs[j-1].Product; j-- {
			rs[j], rs[j-1] = rs[j-1], rs[j]
		}
	}
}
