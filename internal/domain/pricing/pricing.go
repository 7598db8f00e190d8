// Package pricing construye y valida líneas de factura en uno de los dos modos
// de precio (regular o recompra) a partir de la entrada cruda del formulario.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// Nombres de campo usados en los errores de validación.
const (
	FieldMode        = "mode"
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldPrice       = "price"
	FieldGram        = "gram"
	FieldBuybackRate = "buyback_rate"
)

// ItemInput entrada cruda del formulario. Los campos del modo inactivo se descartan.
type ItemInput struct {
	Mode        entity.ItemMode  `json:"mode"`
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Gram        *decimal.Decimal `json:"gram,omitempty"`
	BuybackRate *decimal.Decimal `json:"buyback_rate,omitempty"`
}

// Build valida la entrada y devuelve la variante correspondiente con el id dado.
// Los errores son domain.ValidationErrors con un FieldError por campo fallido.
func Build(in ItemInput, id string) (entity.Item, error) {
	var errs domain.ValidationErrors
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		errs.Add(FieldDescription, "la descripción es obligatoria")
	}

	switch in.Mode {
	case entity.ModeRegular:
		validateRegular(&errs, in.Quantity, in.Price)
		if len(errs) > 0 {
			return nil, errs
		}
		return entity.RegularItem{ID: id, Description: desc, Quantity: *in.Quantity, Price: *in.Price}, nil
	case entity.ModeBuyback:
		validateBuyback(&errs, in.Gram, in.BuybackRate)
		if len(errs) > 0 {
			return nil, errs
		}
		return entity.BuybackItem{ID: id, Description: desc, Gram: *in.Gram, BuybackRate: *in.BuybackRate}, nil
	default:
		errs.Add(FieldMode, fmt.Sprintf("modo desconocido %q", in.Mode))
		return nil, errs
	}
}

func validateRegular(errs *domain.ValidationErrors, quantity *int, price *decimal.Decimal) {
	switch {
	case quantity == nil:
		errs.Add(FieldQuantity, "la cantidad es obligatoria")
	case *quantity < 1:
		errs.Add(FieldQuantity, "la cantidad debe ser al menos 1")
	}
	switch {
	case price == nil:
		errs.Add(FieldPrice, "el precio es obligatorio")
	case price.IsNegative():
		errs.Add(FieldPrice, "el precio no puede ser negativo")
	}
}

func validateBuyback(errs *domain.ValidationErrors, gram, rate *decimal.Decimal) {
	switch {
	case gram == nil:
		errs.Add(FieldGram, "los gramos son obligatorios")
	case !gram.IsPositive():
		errs.Add(FieldGram, "los gramos deben ser mayores que 0")
	}
	switch {
	case rate == nil:
		errs.Add(FieldBuybackRate, "la tarifa de recompra es obligatoria")
	case rate.IsNegative():
		errs.Add(FieldBuybackRate, "la tarifa de recompra no puede ser negativa")
	}
}

// CheckCompatible rechaza agregar una línea de modo distinto al de las existentes.
func CheckCompatible(existing entity.Items, mode entity.ItemMode) error {
	current := existing.Mode()
	if current == "" || current == mode {
		return nil
	}
	return fmt.Errorf("%w: la factura tiene ítems %s, no se puede agregar %s", domain.ErrIncompatibleMode, current, mode)
}

// Validate revalida una variante ya construida (ítems que llegan completos, p. ej. en un reemplazo).
func Validate(item entity.Item) error {
	switch v := item.(type) {
	case entity.RegularItem:
		_, err := Build(ItemInput{Mode: entity.ModeRegular, Description: v.Description, Quantity: &v.Quantity, Price: &v.Price}, v.ID)
		return err
	case entity.BuybackItem:
		_, err := Build(ItemInput{Mode: entity.ModeBuyback, Description: v.Description, Gram: &v.Gram, BuybackRate: &v.BuybackRate}, v.ID)
		return err
	default:
		return fmt.Errorf("%w: tipo de ítem desconocido %T", domain.ErrInvalidInput, item)
	}
}

// CheckUniform verifica que todas las líneas compartan modo.
func CheckUniform(items entity.Items) error {
	mode := items.Mode()
	for _, it := range items {
		if it.Mode() != mode {
			return fmt.Errorf("%w: la factura mezcla ítems %s y %s", domain.ErrIncompatibleMode, mode, it.Mode())
		}
	}
	return nil
}
