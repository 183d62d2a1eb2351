package appointment

import (
	"context"
	"fmt"
)

// SlotKey identifica os candidatos calculados de um dia, antes do filtro de
// antecedência, que depende do instante da consulta.
type SlotKey struct {
	TenantID    uint
	Date        string
	Duration    int
	Granularity int
	Selector    string
}

func (k SlotKey) String() string {
	return fmt.Sprintf("%d:%s:%d:%d:%s", k.TenantID, k.Date, k.Duration, k.Granularity, k.Selector)
}

// SlotCache guarda candidatos de disponibilidade. É só otimização de
// leitura: a reserva revalida tudo no store.
type SlotCache interface {
	Get(ctx context.Context, key SlotKey) ([]Slot, bool)
	Set(ctx context.Context, key SlotKey, slots []Slot)
	InvalidateDay(ctx context.Context, tenantID uint, date string)
	InvalidateTenant(ctx context.Context, tenantID uint)
}

// NopCache não guarda nada.
type NopCache struct{}

func (NopCache) Get(context.Context, SlotKey) ([]Slot, bool) { return nil, false }
func (NopCache) Set(context.Context, SlotKey, []Slot)        {}
func (NopCache) InvalidateDay(context.Context, uint, string) {}
func (NopCache) InvalidateTenant(context.Context, uint)      {}
