package worker

// reporte_worker.go
// Processes menu costing report jobs from QueueReportes.
// Loads the menu with its asignaciones, renders the PDF and enqueues the
// email job that delivers it.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adornodavid/aybcosteo-sub001/internal/infra"
	"github.com/adornodavid/aybcosteo-sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ReporteJobPayload is the job envelope sent to QueueReportes.
type ReporteJobPayload struct {
	MenuID string `json:"menu_id"`
	Email  string `json:"email"`
}

// ReporteWorker renders menu costing reports and hands them to the mailer.
type ReporteWorker struct {
	menus          repository.MenuRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewReporteWorker(menus repository.MenuRepository, dispatcher *Dispatcher, pdfStoragePath string) *ReporteWorker {
	return &ReporteWorker{menus: menus, dispatcher: dispatcher, pdfStoragePath: pdfStoragePath}
}

// Process handles a single report job:
//  1. Parse ReporteJobPayload from the job envelope
//  2. Fetch the menu with its restaurante/hotel and active asignaciones
//  3. Build one CostoFila per platillo (margen = precio − costo administrativo)
//  4. Render the PDF
//  5. Enqueue the email job with the PDF attached
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return
	}

	menuID, err := uuid.Parse(payload.MenuID)
	if err != nil {
		log.Error().Str("menu_id", payload.MenuID).Msg("reporte_worker: invalid menu_id")
		return
	}

	menu, err := w.menus.FindConJerarquia(ctx, menuID)
	if err != nil {
		log.Error().Err(err).Str("menu_id", payload.MenuID).Msg("reporte_worker: menu not found")
		return
	}

	asignaciones, err := w.menus.ListAsignaciones(ctx, menuID)
	if err != nil {
		log.Error().Err(err).Str("menu_id", payload.MenuID).Msg("reporte_worker: failed to list asignaciones")
		return
	}

	cien := decimal.NewFromInt(100)
	filas := make([]infra.CostoFila, 0, len(asignaciones))
	for _, a := range asignaciones {
		if a.Platillo == nil {
			continue
		}
		costoPct := decimal.Zero
		if a.PrecioVenta.IsPositive() {
			costoPct = a.Platillo.CostoAdministrativo.Div(a.PrecioVenta).Mul(cien).Round(2)
		}
		filas = append(filas, infra.CostoFila{
			Platillo:            a.Platillo.Nombre,
			CostoTotal:          a.Platillo.CostoTotal,
			CostoAdministrativo: a.Platillo.CostoAdministrativo,
			PrecioVenta:         a.PrecioVenta,
			Margen:              a.PrecioVenta.Sub(a.Platillo.CostoAdministrativo),
			CostoPorcentual:     costoPct,
		})
	}

	pdfPath, err := infra.GenerateReporteCostosPDF(menu, filas, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("menu_id", payload.MenuID).Msg("reporte_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("menu_id", payload.MenuID).Msg("reporte_worker: PDF generated")

	emailJob := EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("Reporte de costos — %s", menu.Nombre),
		Body:    fmt.Sprintf("Adjunto encontrarás el reporte de costos y márgenes del menú %s (%d platillos).", menu.Nombre, len(filas)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("reporte_worker: failed to enqueue email")
		return
	}
	log.Info().Str("email", payload.Email).Msg("reporte_worker: email job enqueued")
}
