package services

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"boacompra-loader/models"
	"boacompra-loader/store"

	"github.com/shopspring/decimal"
)

// memStore is an in-memory store.Store keyed by gorm column names.
type memStore struct {
	mu         sync.Mutex
	tables     map[string][]map[string]any
	nextID     map[string]int64
	appendErr  map[string]error
	countErr   map[string]error
	procResult map[string][]byte
	procErr    error
	procArgs   map[string][]any
	appends    []string
}

var _ store.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		tables:     map[string][]map[string]any{},
		nextID:     map[string]int64{},
		appendErr:  map[string]error{},
		countErr:   map[string]error{},
		procResult: map[string][]byte{},
		procArgs:   map[string][]any{},
	}
}

func (m *memStore) rows(table string) []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[table]
}

func (m *memStore) Count(_ context.Context, table string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.countErr[table]; err != nil {
		return 0, err
	}
	return int64(len(m.tables[table])), nil
}

func (m *memStore) Project(_ context.Context, q store.Projection, dest any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := reflect.ValueOf(dest)
	if out.Kind() != reflect.Pointer || out.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("dest must be a pointer to a slice, got %T", dest)
	}
	rows := append([]map[string]any(nil), m.tables[q.Table]...)
	if q.OrderBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i][q.OrderBy].(int64) < rows[j][q.OrderBy].(int64)
		})
	}

	slice := out.Elem()
	elemType := slice.Type().Elem()
	for _, row := range rows {
		elem := reflect.New(elemType).Elem()
		if elemType.Kind() == reflect.Struct && elemType != reflect.TypeOf(decimal.Decimal{}) {
			for col, f := range columnFields(elem) {
				if v, ok := row[col]; ok {
					f.Set(reflect.ValueOf(v).Convert(f.Type()))
				}
			}
		} else {
			v, ok := row[q.Columns[0]]
			if !ok {
				return fmt.Errorf("%s has no column %s", q.Table, q.Columns[0])
			}
			elem.Set(reflect.ValueOf(v).Convert(elemType))
		}
		slice = reflect.Append(slice, elem)
	}
	out.Elem().Set(slice)
	return nil
}

func (m *memStore) Append(_ context.Context, table string, rows any) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appends = append(m.appends, table)
	if err := m.appendErr[table]; err != nil {
		return 0, err
	}

	v := reflect.ValueOf(rows)
	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		row := map[string]any{}
		for col, f := range columnFields(elem) {
			if isAutoKey(elem, col) && f.IsZero() {
				m.nextID[table]++
				f.SetInt(m.nextID[table])
			}
			row[col] = f.Interface()
		}
		m.tables[table] = append(m.tables[table], row)
	}
	return int64(v.Len()), nil
}

func (m *memStore) RecomputeOrderTotals(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := map[int64]decimal.Decimal{}
	for _, item := range m.tables[models.TableOrderItem] {
		id := item["id_pedido"].(int64)
		totals[id] = totals[id].Add(item["vl_item_total"].(decimal.Decimal))
	}
	var n int64
	for _, order := range m.tables[models.TableOrder] {
		if total, ok := totals[order["id_pedido"].(int64)]; ok {
			order["vl_pedido_total"] = total
			n++
		}
	}
	return n, nil
}

func (m *memStore) CallProcedure(_ context.Context, name string, args []any) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.procArgs[name] = args
	if m.procErr != nil {
		return nil, m.procErr
	}
	return m.procResult[name], nil
}

// columnFields maps gorm column names to the settable fields of v,
// descending into embedded structs.
func columnFields(v reflect.Value) map[string]reflect.Value {
	out := map[string]reflect.Value{}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("gorm")
		if sf.Anonymous && strings.Contains(tag, "embedded") {
			for col, f := range columnFields(v.Field(i)) {
				out[col] = f
			}
			continue
		}
		if col := tagValue(tag, "column"); col != "" {
			out[col] = v.Field(i)
		}
	}
	return out
}

func isAutoKey(v reflect.Value, column string) bool {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		if tagValue(tag, "column") != column {
			continue
		}
		return strings.Contains(tag, "primaryKey") && strings.Contains(tag, "autoIncrement") &&
			!strings.Contains(tag, "autoIncrement:false")
	}
	return false
}

func tagValue(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
