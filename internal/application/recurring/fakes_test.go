package recurring_test

import (
	"context"
	"sort"
	"time"

	"github.com/anayu15/mi-gestor-sub002/internal/domain/entity"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/repository"
	"github.com/anayu15/mi-gestor-sub002/internal/domain/schedule"
)

// memDB estado compartido de los repos en memoria de los tests.
// updateBudget/deleteBudget (< 0 = sin límite) simulan un colaborador sin
// lotes atómicos que se queda a medias.
type memDB struct {
	templates    map[string]*entity.RecurringTemplate
	occurrences  map[string]*entity.Occurrence
	clients      map[string]*entity.Client
	updateBudget int
	deleteBudget int
}

func newMemDB() *memDB {
	return &memDB{
		templates:    make(map[string]*entity.RecurringTemplate),
		occurrences:  make(map[string]*entity.Occurrence),
		clients:      make(map[string]*entity.Client),
		updateBudget: -1,
		deleteBudget: -1,
	}
}

func (db *memDB) templateRepo() *fakeTemplateRepo     { return &fakeTemplateRepo{db: db} }
func (db *memDB) occurrenceRepo() *fakeOccurrenceRepo { return &fakeOccurrenceRepo{db: db} }
func (db *memDB) clientRepo() *fakeClientRepo         { return &fakeClientRepo{db: db} }

// fakeTxRunner pasa los repos en memoria tal cual (sin transacción real).
type fakeTxRunner struct {
	db *memDB
}

func (r *fakeTxRunner) RunSeries(ctx context.Context, fn func(repository.TemplateRepository, repository.OccurrenceRepository) error) error {
	return fn(r.db.templateRepo(), r.db.occurrenceRepo())
}

// --- TemplateRepository ---

type fakeTemplateRepo struct {
	db *memDB
}

func (r *fakeTemplateRepo) Create(tpl *entity.RecurringTemplate) error {
	r.db.templates[tpl.ID] = tpl
	return nil
}

func (r *fakeTemplateRepo) Update(tpl *entity.RecurringTemplate) error {
	r.db.templates[tpl.ID] = tpl
	return nil
}

func (r *fakeTemplateRepo) Delete(id string) error {
	delete(r.db.templates, id)
	return nil
}

func (r *fakeTemplateRepo) GetByID(id string) (*entity.RecurringTemplate, error) {
	return r.db.templates[id], nil
}

func (r *fakeTemplateRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.RecurringTemplate, error) {
	var out []*entity.RecurringTemplate
	for _, tpl := range r.db.templates {
		if tpl.OwnerID == ownerID {
			out = append(out, tpl)
		}
	}
	return out, nil
}

func (r *fakeTemplateRepo) ListActive() ([]*entity.RecurringTemplate, error) {
	var out []*entity.RecurringTemplate
	for _, tpl := range r.db.templates {
		if tpl.Active {
			out = append(out, tpl)
		}
	}
	return out, nil
}

// --- OccurrenceRepository ---

type fakeOccurrenceRepo struct {
	db *memDB
}

func (r *fakeOccurrenceRepo) Create(occ *entity.Occurrence) error {
	r.db.occurrences[occ.ID] = occ
	return nil
}

func (r *fakeOccurrenceRepo) GetByID(id string) (*entity.Occurrence, error) {
	return r.db.occurrences[id], nil
}

func (r *fakeOccurrenceRepo) ListBySeries(seriesID string) ([]*entity.Occurrence, error) {
	var out []*entity.Occurrence
	for _, occ := range r.db.occurrences {
		if occ.SeriesID == seriesID {
			out = append(out, occ)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *fakeOccurrenceRepo) ExistingDueDates(seriesID string) (map[time.Time]bool, error) {
	existing := make(map[time.Time]bool)
	for _, occ := range r.db.occurrences {
		if occ.SeriesID == seriesID {
			existing[occ.DueDate] = true
		}
	}
	return existing, nil
}

func (r *fakeOccurrenceRepo) CountByFilter(f *schedule.SeriesFilter) (int, error) {
	n := 0
	for _, occ := range r.db.occurrences {
		if matches(occ, f) {
			n++
		}
	}
	return n, nil
}

func (r *fakeOccurrenceRepo) UpdateByFilter(f *schedule.SeriesFilter, patch *repository.OccurrencePatch, now time.Time) (int, error) {
	n := 0
	for _, occ := range r.sortedByDueDate() {
		if !matches(occ, f) {
			continue
		}
		if r.db.updateBudget == 0 {
			break
		}
		if r.db.updateBudget > 0 {
			r.db.updateBudget--
		}
		applyPatch(occ, patch)
		if f.Detach {
			occ.SeriesID = ""
		}
		occ.UpdatedAt = now
		n++
	}
	return n, nil
}

func (r *fakeOccurrenceRepo) DeleteByFilter(f *schedule.SeriesFilter) (int, error) {
	n := 0
	for _, occ := range r.sortedByDueDate() {
		if !matches(occ, f) {
			continue
		}
		if r.db.deleteBudget == 0 {
			break
		}
		if r.db.deleteBudget > 0 {
			r.db.deleteBudget--
		}
		delete(r.db.occurrences, occ.ID)
		n++
	}
	return n, nil
}

func (r *fakeOccurrenceRepo) DetachSeries(seriesID string, now time.Time) (int, error) {
	n := 0
	for _, occ := range r.db.occurrences {
		if occ.SeriesID == seriesID {
			occ.SeriesID = ""
			occ.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

// Las mutaciones de lote se aplican en orden ascendente de vencimiento, como
// exige el contrato cuando el colaborador no es atómico.
func (r *fakeOccurrenceRepo) sortedByDueDate() []*entity.Occurrence {
	out := make([]*entity.Occurrence, 0, len(r.db.occurrences))
	for _, occ := range r.db.occurrences {
		out = append(out, occ)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

func matches(occ *entity.Occurrence, f *schedule.SeriesFilter) bool {
	if f.Single() {
		return occ.ID == f.OccurrenceID
	}
	// Las desvinculadas no llevan serie: ningún filtro de lote las alcanza.
	if occ.SeriesID == "" || occ.SeriesID != f.SeriesID {
		return false
	}
	return f.From == nil || !occ.DueDate.Before(*f.From)
}

func applyPatch(occ *entity.Occurrence, patch *repository.OccurrencePatch) {
	if patch == nil {
		return
	}
	if patch.Name != nil {
		occ.Name = *patch.Name
	}
	if patch.BaseAmount != nil {
		occ.BaseAmount = *patch.BaseAmount
	}
	if patch.VATRate != nil {
		occ.VATRate = *patch.VATRate
	}
	if patch.WithholdingRate != nil {
		occ.WithholdingRate = *patch.WithholdingRate
	}
	if patch.Status != nil {
		occ.Status = *patch.Status
	}
}

// --- ClientRepository ---

type fakeClientRepo struct {
	db *memDB
}

func (r *fakeClientRepo) Create(client *entity.Client) error {
	r.db.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.db.clients[id], nil
}

func (r *fakeClientRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.db.clients {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}
