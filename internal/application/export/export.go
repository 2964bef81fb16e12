// Package export genera los documentos de pedido de una recomendación: la
// hoja de pedido en PDF para el encargado y el XML de intercambio para el
// proveedor.
package export

import (
	"context"
	"fmt"

	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// OrderSheetGenerator produce la hoja de pedido en PDF.
type OrderSheetGenerator interface {
	Generate(rec *entity.Recommendation) ([]byte, error)
}

// OrderXMLBuilder produce el documento XML de pedido al proveedor.
type OrderXMLBuilder interface {
	Build(rec *entity.Recommendation) ([]byte, error)
}

// UseCase arma los documentos de exportación de una recomendación.
type UseCase struct {
	recRepo    repository.RecommendationRepository
	pdfGen     OrderSheetGenerator
	xmlBuilder OrderXMLBuilder
}

// NewUseCase construye el caso de uso de exportación.
func NewUseCase(recRepo repository.RecommendationRepository, pdfGen OrderSheetGenerator, xmlBuilder OrderXMLBuilder) *UseCase {
	return &UseCase{recRepo: recRepo, pdfGen: pdfGen, xmlBuilder: xmlBuilder}
}

// OrderSheetPDF genera la hoja de pedido de la recomendación.
// Retorna (pdfBytes, filename, nil) o domain.ErrNotFound si no existe.
func (uc *UseCase) OrderSheetPDF(ctx context.Context, recommendationID string) ([]byte, string, error) {
	rec, err := uc.loadWithItems(ctx, recommendationID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.pdfGen.Generate(rec)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar pdf: %w", err)
	}
	filename := fmt.Sprintf("pedido_%s.pdf", rec.RecommendationDate.Format("2006-01-02"))
	return pdf, filename, nil
}

// OrderXML genera el XML de pedido al proveedor.
func (uc *UseCase) OrderXML(ctx context.Context, recommendationID string) ([]byte, string, error) {
	rec, err := uc.loadWithItems(ctx, recommendationID)
	if err != nil {
		return nil, "", err
	}
	xml, err := uc.xmlBuilder.Build(rec)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar xml: %w", err)
	}
	filename := fmt.Sprintf("pedido_%s.xml", rec.RecommendationDate.Format("2006-01-02"))
	return xml, filename, nil
}

func (uc *UseCase) loadWithItems(ctx context.Context, recommendationID string) (*entity.Recommendation, error) {
	rec, err := uc.recRepo.GetByID(ctx, recommendationID)
	if err != nil {
		return nil, err
	}
	if len(rec.Items) == 0 {
		items, err := uc.recRepo.ListItems(ctx, recommendationID)
		if err != nil {
			return nil, err
		}
		rec.Items = items
	}
	return rec, nil
}
