package store

import (
	"context"

	"autoparts-backend/internal/gateway"
	"autoparts-backend/internal/models"
)

// AddWorker creates a staff profile. The role is always WORKER.
func (s *Store) AddWorker(ctx context.Context, in models.WorkerInput) (w models.User, err error) {
	defer s.track("add_worker", &err)

	w, err = insertOne[models.User](ctx, s.gw, tableUsers, in, gateway.Row{"role": string(models.RoleWorker)})
	if err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	s.workers = prepend(s.workers, w)
	s.mu.Unlock()
	return w, nil
}

func (s *Store) UpdateWorker(ctx context.Context, id string, patch models.UserPatch) (w models.User, err error) {
	defer s.track("update_worker", &err)

	w, err = updateOne[models.User](ctx, s.gw, tableUsers, id, patch)
	if err != nil {
		return models.User{}, err
	}
	s.mu.Lock()
	s.syncUser(w)
	s.mu.Unlock()
	return w, nil
}

func (s *Store) DeleteWorker(ctx context.Context, id string) (err error) {
	defer s.track("delete_worker", &err)

	if err = deleteOne(ctx, s.gw, tableUsers, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.workers = removeWhere(s.workers, func(x models.User) bool { return x.ID == id })
	s.mu.Unlock()
	return nil
}

// RegisterWorkerPayment appends a payroll entry.
func (s *Store) RegisterWorkerPayment(ctx context.Context, in models.WorkerPaymentInput) (p models.WorkerPayment, err error) {
	defer s.track("register_worker_payment", &err)

	p, err = insertOne[models.WorkerPayment](ctx, s.gw, tableWorkerPayments, in, nil)
	if err != nil {
		return models.WorkerPayment{}, err
	}
	s.mu.Lock()
	s.workerPayments = prepend(s.workerPayments, p)
	s.mu.Unlock()
	return p, nil
}
