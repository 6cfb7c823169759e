package service

import (
	"context"
	"errors"
	"testing"

	"github.com/adornodavid/aybcosteo-sub001/internal/dto"
	"github.com/adornodavid/aybcosteo-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type menuFixture struct {
	menus      *stubMenuRepo
	platillos  *stubPlatilloRepo
	historico  *stubHistoricoSvc
	svc        MenuService
	menuID     uuid.UUID
	platilloID uuid.UUID
}

func newMenuFixture(t *testing.T) *menuFixture {
	t.Helper()
	f := &menuFixture{
		menus:     newStubMenuRepo(),
		platillos: newStubPlatilloRepo(),
		historico: &stubHistoricoSvc{res: ResultadoHistorico{Creado: true, Filas: 3}},
	}
	f.svc = NewMenuService(f.menus, newStubRestauranteRepo(), f.platillos, f.historico, nil)

	menu := &model.Menu{RestauranteID: uuid.New(), Nombre: "Desayunos", Activo: true}
	require.NoError(t, f.menus.Create(context.Background(), menu))
	f.menuID = menu.ID

	platillo := &model.Platillo{
		Nombre:              "Chilaquiles verdes",
		CostoTotal:          dec("27.00"),
		CostoAdministrativo: dec("27.00"),
		Activo:              true,
	}
	require.NoError(t, f.platillos.Create(context.Background(), platillo))
	f.platilloID = platillo.ID
	return f
}

func TestAgregarPlatillo(t *testing.T) {
	f := newMenuFixture(t)

	resp, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
		CostoPorcentual:     dec("54.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(dec("50.00")))
	assert.True(t, resp.PrecioConIVA.Equal(dec("58.00")))
	assert.True(t, resp.MargenUtilidad.Equal(dec("23.00")))
	assert.True(t, resp.Activo)

	// El evento de precio llegó a la política de snapshots.
	require.Len(t, f.historico.events, 1)
	ev := f.historico.events[0]
	assert.Equal(t, f.platilloID, ev.PlatilloID)
	assert.Equal(t, f.menuID, ev.MenuID)
	assert.True(t, ev.PrecioVenta.Equal(dec("50.00")))

	assert.True(t, resp.Historico.Aplicado)
	assert.True(t, resp.Historico.Creado)
	assert.Equal(t, 3, resp.Historico.Filas)
}

func TestAgregarPlatillo_Duplicado(t *testing.T) {
	f := newMenuFixture(t)
	req := dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
	}

	_, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, req)
	require.NoError(t, err)

	_, err = f.svc.AgregarPlatillo(context.Background(), f.menuID, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ya está asignado")
}

func TestAgregarPlatillo_PlatilloInactivo(t *testing.T) {
	f := newMenuFixture(t)
	require.NoError(t, f.platillos.SoftDelete(context.Background(), f.platilloID))

	_, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactivo")
}

func TestAgregarPlatillo_FalloDelLedgerNoFallaLaPeticion(t *testing.T) {
	f := newMenuFixture(t)
	f.historico.res = ResultadoHistorico{Err: errors.New("db caída")}

	resp, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
	})

	// La asignación (mutación primaria) se conserva y la respuesta llega;
	// el fallo del ledger viaja en el outcome.
	require.NoError(t, err)
	assert.False(t, resp.Historico.Aplicado)
	assert.Equal(t, "db caída", resp.Historico.Error)

	_, findErr := f.menus.FindAsignacion(context.Background(), f.menuID, f.platilloID)
	assert.NoError(t, findErr)
}

func TestActualizarPrecioVenta(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
	})
	require.NoError(t, err)

	resp, err := f.svc.ActualizarPrecioVenta(context.Background(), f.menuID, f.platilloID, dto.ActualizarPrecioRequest{
		PrecioVenta:         dec("60.00"),
		CostoAdministrativo: dec("27.00"),
		CostoPorcentual:     dec("45.00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(dec("60.00")))
	assert.True(t, resp.PrecioConIVA.Equal(dec("69.60")))
	assert.True(t, resp.MargenUtilidad.Equal(dec("33.00")))
	assert.Len(t, f.historico.events, 2)
}

func TestActualizarPrecioVenta_NoAsignado(t *testing.T) {
	f := newMenuFixture(t)

	_, err := f.svc.ActualizarPrecioVenta(context.Background(), f.menuID, f.platilloID, dto.ActualizarPrecioRequest{
		PrecioVenta:         dec("60.00"),
		CostoAdministrativo: dec("27.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no está asignado")
	assert.Empty(t, f.historico.events, "sin asignación no hay evento de precio")
}

func TestQuitarPlatillo(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.QuitarPlatillo(context.Background(), f.menuID, f.platilloID))

	asignaciones, err := f.svc.ListarAsignaciones(context.Background(), f.menuID)
	require.NoError(t, err)
	assert.Empty(t, asignaciones)
}

func TestMargenes(t *testing.T) {
	f := newMenuFixture(t)
	_, err := f.svc.AgregarPlatillo(context.Background(), f.menuID, dto.AgregarPlatilloRequest{
		PlatilloID:          f.platilloID.String(),
		PrecioVenta:         dec("50.00"),
		CostoAdministrativo: dec("27.00"),
	})
	require.NoError(t, err)

	// El stub no precarga Platillo en ListAsignaciones; lo fijamos a mano
	// como lo haría el Preload.
	for _, a := range f.menus.asignaciones {
		p, _ := f.platillos.FindByID(context.Background(), a.PlatilloID)
		a.Platillo = p
	}

	resp, err := f.svc.Margenes(context.Background(), f.menuID)
	require.NoError(t, err)
	assert.Equal(t, "Desayunos", resp.Menu)
	require.Len(t, resp.Platillos, 1)
	item := resp.Platillos[0]
	assert.Equal(t, "Chilaquiles verdes", item.Platillo)
	assert.True(t, item.MargenUtilidad.Equal(dec("23.00")))
	assert.True(t, item.PrecioConIVA.Equal(dec("58.00")))
}
