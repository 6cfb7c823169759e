package service

import (
	"context"
	"testing"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type platilloFixture struct {
	platillos    *stubPlatilloRepo
	recetas      *stubRecetaRepo
	ingredientes *stubIngredienteRepo
	svc          PlatilloService
}

func newPlatilloFixture() *platilloFixture {
	platillos := newStubPlatilloRepo()
	recetas := newStubRecetaRepo(platillos)
	ingredientes := newStubIngredienteRepo(platillos)
	return &platilloFixture{
		platillos:    platillos,
		recetas:      recetas,
		ingredientes: ingredientes,
		svc:          NewPlatilloService(platillos, recetas, ingredientes),
	}
}

func TestAgregarComponentes_RecalculaCostoTotal(t *testing.T) {
	f := newPlatilloFixture()
	ctx := context.Background()

	platillo := &model.Platillo{Nombre: "Enchiladas suizas", Activo: true}
	require.NoError(t, f.platillos.Create(ctx, platillo))

	salsa := &model.Receta{Nombre: "Salsa suiza", Costo: dec("5.00"), Activo: true}
	require.NoError(t, f.recetas.Create(ctx, salsa))
	tortilla := &model.Ingrediente{Nombre: "Tortilla", CostoUnitario: dec("0.80"), Activo: true}
	require.NoError(t, f.ingredientes.Create(ctx, tortilla))

	// 2 porciones de salsa: 2 × 5.00 = 10.00
	resp, err := f.svc.AgregarReceta(ctx, platillo.ID, dto.AgregarRecetaRequest{
		RecetaID: salsa.ID.String(),
		Cantidad: dec("2"),
	})
	require.NoError(t, err)
	assert.True(t, resp.CostoTotal.Equal(dec("10.00")), "costo = %s", resp.CostoTotal)

	// 5 tortillas: 5 × 0.80 = 4.00 → total 14.00
	resp, err = f.svc.AgregarIngrediente(ctx, platillo.ID, dto.AgregarIngredienteRequest{
		IngredienteID: tortilla.ID.String(),
		Cantidad:      dec("5"),
	})
	require.NoError(t, err)
	assert.True(t, resp.CostoTotal.Equal(dec("14.00")), "costo = %s", resp.CostoTotal)
	require.Len(t, resp.Recetas, 1)
	require.Len(t, resp.Ingredientes, 1)
	assert.True(t, resp.Recetas[0].CostoParcial.Equal(dec("10.00")))
	assert.True(t, resp.Ingredientes[0].CostoParcial.Equal(dec("4.00")))
}

func TestAgregarReceta_CantidadInvalida(t *testing.T) {
	f := newPlatilloFixture()
	ctx := context.Background()

	platillo := &model.Platillo{Nombre: "Tacos", Activo: true}
	require.NoError(t, f.platillos.Create(ctx, platillo))
	salsa := &model.Receta{Nombre: "Salsa roja", Costo: dec("3.00"), Activo: true}
	require.NoError(t, f.recetas.Create(ctx, salsa))

	_, err := f.svc.AgregarReceta(ctx, platillo.ID, dto.AgregarRecetaRequest{
		RecetaID: salsa.ID.String(),
		Cantidad: dec("0"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mayor a cero")
}

func TestQuitarComponente_RecalculaCostoTotal(t *testing.T) {
	f := newPlatilloFixture()
	ctx := context.Background()

	platillo := &model.Platillo{Nombre: "Sopa azteca", Activo: true}
	require.NoError(t, f.platillos.Create(ctx, platillo))
	caldo := &model.Receta{Nombre: "Caldo base", Costo: dec("8.00"), Activo: true}
	require.NoError(t, f.recetas.Create(ctx, caldo))
	aguacate := &model.Ingrediente{Nombre: "Aguacate", CostoUnitario: dec("12.00"), Activo: true}
	require.NoError(t, f.ingredientes.Create(ctx, aguacate))

	_, err := f.svc.AgregarReceta(ctx, platillo.ID, dto.AgregarRecetaRequest{
		RecetaID: caldo.ID.String(), Cantidad: dec("1"),
	})
	require.NoError(t, err)
	_, err = f.svc.AgregarIngrediente(ctx, platillo.ID, dto.AgregarIngredienteRequest{
		IngredienteID: aguacate.ID.String(), Cantidad: dec("0.5"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.QuitarIngrediente(ctx, platillo.ID, aguacate.ID))

	p, err := f.platillos.FindByID(ctx, platillo.ID)
	require.NoError(t, err)
	assert.True(t, p.CostoTotal.Equal(dec("8.00")), "costo = %s", p.CostoTotal)
}

func TestActualizarCostoIngrediente_PropagaAPlatillos(t *testing.T) {
	f := newPlatilloFixture()
	ctx := context.Background()
	ingredienteSvc := NewIngredienteService(f.ingredientes, f.platillos)

	platillo := &model.Platillo{Nombre: "Guacamole", Activo: true}
	require.NoError(t, f.platillos.Create(ctx, platillo))
	aguacate := &model.Ingrediente{Nombre: "Aguacate", CostoUnitario: dec("10.00"), Activo: true}
	require.NoError(t, f.ingredientes.Create(ctx, aguacate))

	// 3 × 10.00 = 30.00
	_, err := f.svc.AgregarIngrediente(ctx, platillo.ID, dto.AgregarIngredienteRequest{
		IngredienteID: aguacate.ID.String(), Cantidad: dec("3"),
	})
	require.NoError(t, err)

	// Sube el aguacate a 14.00: el parcial pasa a 42.00 y el total también.
	resp, err := ingredienteSvc.ActualizarCosto(ctx, aguacate.ID, dto.ActualizarCostoRequest{Costo: dec("14.00")})
	require.NoError(t, err)
	assert.True(t, resp.CostoUnitario.Equal(dec("14.00")))

	p, err := f.platillos.FindByID(ctx, platillo.ID)
	require.NoError(t, err)
	assert.True(t, p.CostoTotal.Equal(dec("42.00")), "costo = %s", p.CostoTotal)
}

func TestActualizarCostoReceta_PropagaAPlatillos(t *testing.T) {
	f := newPlatilloFixture()
	ctx := context.Background()
	recetaSvc := NewRecetaService(f.recetas, f.platillos)

	primero := &model.Platillo{Nombre: "Pollo en mole", Activo: true}
	segundo := &model.Platillo{Nombre: "Enmoladas", Activo: true}
	require.NoError(t, f.platillos.Create(ctx, primero))
	require.NoError(t, f.platillos.Create(ctx, segundo))
	mole := &model.Receta{Nombre: "Mole madre", Costo: dec("20.00"), Activo: true}
	require.NoError(t, f.recetas.Create(ctx, mole))

	_, err := f.svc.AgregarReceta(ctx, primero.ID, dto.AgregarRecetaRequest{
		RecetaID: mole.ID.String(), Cantidad: dec("1"),
	})
	require.NoError(t, err)
	_, err = f.svc.AgregarReceta(ctx, segundo.ID, dto.AgregarRecetaRequest{
		RecetaID: mole.ID.String(), Cantidad: dec("2"),
	})
	require.NoError(t, err)

	_, err = recetaSvc.ActualizarCosto(ctx, mole.ID, dto.ActualizarCostoRequest{Costo: dec("25.00")})
	require.NoError(t, err)

	p1, _ := f.platillos.FindByID(ctx, primero.ID)
	p2, _ := f.platillos.FindByID(ctx, segundo.ID)
	assert.True(t, p1.CostoTotal.Equal(dec("25.00")), "costo = %s", p1.CostoTotal)
	assert.True(t, p2.CostoTotal.Equal(dec("50.00")), "costo = %s", p2.CostoTotal)
}

func TestActualizarCosto_Negativo(t *testing.T) {
	f := newPlatilloFixture()
	ctx := context.Background()
	ingredienteSvc := NewIngredienteService(f.ingredientes, f.platillos)

	cebolla := &model.Ingrediente{Nombre: "Cebolla", CostoUnitario: dec("2.00"), Activo: true}
	require.NoError(t, f.ingredientes.Create(ctx, cebolla))

	_, err := ingredienteSvc.ActualizarCosto(ctx, cebolla.ID, dto.ActualizarCostoRequest{Costo: dec("-1.00")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negativo")
}
