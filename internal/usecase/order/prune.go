package order

import "context"

// PruneExpiredOrders removes records whose storage TTL elapsed. Wired to
// the scheduler in main, never to a request path.
func (uc *DefaultOrderUsecase) PruneExpiredOrders(ctx context.Context) (int64, error) {
	pruned, err := uc.OrderRepo.PruneExpired(ctx, uc.now())
	if err != nil {
		uc.log.Error("failed to prune expired orders", "error", err.Error())
		return 0, err
	}

	if uc.Metrics != nil && pruned > 0 {
		uc.Metrics.RecordPruned(pruned)
	}
	if pruned > 0 {
		uc.log.Info("pruned expired orders", "count", pruned)
	}
	return pruned, nil
}
