// Package recommendation implementa el ciclo de vida de una recomendación:
// edición de cantidades en pending, ejecución exactamente-una-vez y
// cancelación. executed y cancelled son estados terminales.
package recommendation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
	"github.com/jhoicas/Reposicion-api/pkg/logger"
)

// Días estimados entre la emisión del pedido y la entrega del proveedor.
const deliveryLeadDays = 2

// LifecycleUseCase aplica las transiciones de estado de una recomendación.
// Toda transición corre dentro de una transacción con lock de fila.
type LifecycleUseCase struct {
	tx   TxRunner
	log  *logger.Logger
	keys *keyMutex
	now  func() time.Time
}

// NewLifecycleUseCase construye el caso de uso del ciclo de vida.
func NewLifecycleUseCase(tx TxRunner, log *logger.Logger) *LifecycleUseCase {
	return &LifecycleUseCase{
		tx:   tx,
		log:  log,
		keys: newKeyMutex(),
		now:  time.Now,
	}
}

// EditItem fija la cantidad de un renglón de una recomendación pending y
// recalcula su costo y los totales de la cabecera en la misma transacción.
// Los snapshots de stock y precio no se tocan.
func (uc *LifecycleUseCase) EditItem(ctx context.Context, recommendationID, itemID string, quantity int) (*dto.RecommendationItemResponse, error) {
	if quantity < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	unlock := uc.keys.Lock(recommendationID)
	defer unlock()

	var updated *entity.RecommendationItem
	err := uc.tx.Run(ctx, func(
		recRepo repository.RecommendationRepository,
		_ repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		rec, err := recRepo.GetForUpdate(ctx, recommendationID)
		if err != nil {
			return err
		}
		if rec.IsTerminal() {
			return domain.ErrInvalidState
		}

		item, err := recRepo.GetItem(ctx, recommendationID, itemID)
		if err != nil {
			return err
		}

		item.OrderQuantity = quantity
		item.TotalCost = entity.ItemTotal(item.UnitPriceSnapshot, quantity)
		if err := recRepo.UpdateItemQuantity(ctx, item.ID, item.OrderQuantity, item.TotalCost); err != nil {
			return err
		}
		if err := recRepo.RefreshTotals(ctx, recommendationID); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("recommendation_id", recommendationID).
		Str("item_id", itemID).
		Int("order_quantity", quantity).
		Msg("renglón de recomendación editado")

	resp := itemToDTO(*updated)
	return &resp, nil
}

// Execute aplica la recomendación exactamente una vez: incrementa el stock de
// cada producto según la cantidad pedida, deja el rastro de pedidos al
// proveedor y transiciona a executed. Todo dentro de una transacción: si un
// producto de la recomendación ya no existe, nada se aplica.
func (uc *LifecycleUseCase) Execute(ctx context.Context, recommendationID string) (*dto.ExecuteResponse, error) {
	unlock := uc.keys.Lock(recommendationID)
	defer unlock()

	executedAt := uc.now()
	var resp *dto.ExecuteResponse
	err := uc.tx.Run(ctx, func(
		recRepo repository.RecommendationRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		rec, err := recRepo.GetForUpdate(ctx, recommendationID)
		if err != nil {
			return err
		}
		if rec.IsTerminal() {
			return domain.ErrInvalidState
		}

		items, err := recRepo.ListItems(ctx, recommendationID)
		if err != nil {
			return err
		}

		orders := make([]*entity.PurchaseOrder, 0, len(items))
		for _, item := range items {
			if _, err := productRepo.GetForUpdate(ctx, item.ProductID); err != nil {
				if err == domain.ErrNotFound {
					return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrProductMissing)
				}
				return err
			}
			if item.OrderQuantity == 0 {
				continue
			}
			if err := productRepo.IncrementStock(ctx, item.ProductID, item.OrderQuantity); err != nil {
				return err
			}
			orders = append(orders, &entity.PurchaseOrder{
				ID:               uuid.NewString(),
				RecommendationID: recommendationID,
				ProductID:        item.ProductID,
				ProductName:      item.ProductName,
				QuantityOrdered:  item.OrderQuantity,
				UnitCost:         item.UnitPriceSnapshot,
				TotalCost:        item.TotalCost,
				OrderDate:        executedAt,
				DeliveryDate:     executedAt.AddDate(0, 0, deliveryLeadDays),
				Status:           "pending",
				CreatedAt:        executedAt,
			})
		}

		if len(orders) > 0 {
			if err := orderRepo.CreateBatch(ctx, orders); err != nil {
				return err
			}
		}
		if err := recRepo.MarkExecuted(ctx, recommendationID, executedAt); err != nil {
			return err
		}

		resp = &dto.ExecuteResponse{
			RecommendationID: recommendationID,
			Status:           entity.RecommendationStatusExecuted,
			ItemsApplied:     len(orders),
			TotalCost:        rec.TotalCost,
			ExecutedAt:       executedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("recommendation_id", recommendationID).
		Int("items_applied", resp.ItemsApplied).
		Msg("recomendación ejecutada")
	return resp, nil
}

// Cancel transiciona una recomendación pending a cancelled. No toca stock.
func (uc *LifecycleUseCase) Cancel(ctx context.Context, recommendationID string) error {
	unlock := uc.keys.Lock(recommendationID)
	defer unlock()

	err := uc.tx.Run(ctx, func(
		recRepo repository.RecommendationRepository,
		_ repository.ProductRepository,
		_ repository.PurchaseOrderRepository,
	) error {
		rec, err := recRepo.GetForUpdate(ctx, recommendationID)
		if err != nil {
			return err
		}
		if rec.IsTerminal() {
			return domain.ErrInvalidState
		}
		return recRepo.MarkCancelled(ctx, recommendationID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("recommendation_id", recommendationID).Msg("recomendación cancelada")
	return nil
}
