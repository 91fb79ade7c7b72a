package naming

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"autoparts-backend/internal/models"
)

// Schema lists the record shapes that may cross the adapter.
type Schema interface {
	models.User | models.WorkerInput | models.UserPatch |
		models.Product | models.ProductInput | models.ProductPatch |
		models.Supplier | models.SupplierInput | models.SupplierPatch |
		models.PurchaseInvoice | models.PurchaseInvoiceInput | models.PurchaseInvoicePatch |
		models.SalesInvoice | models.SalesHeader | models.SalesItem | models.PaymentHistory |
		models.SalesPaymentInput | models.DebtSettlement |
		models.WorkerPayment | models.WorkerPaymentInput
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Encode flattens v into a storage-named record. Nil pointers, zero times and
// omitempty zero values are dropped; slices (child collections) are never encoded.
func Encode[T Schema](v T) (Record, error) {
	out := make(Record)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("encode %T: not a struct", v)
	}
	flatten(rv, out)
	return ToStorage(out), nil
}

// Decode converts a storage row to application naming and decodes it into T.
// Elements of the nested collections are converted too.
func Decode[T Schema](row Record) (T, error) {
	var out T
	if row == nil {
		return out, fmt.Errorf("decode %T: nil row", out)
	}

	app := ToApplication(row, NestedCollections...)
	for _, key := range NestedCollections {
		if nested, ok := app[key]; ok {
			app[key] = applicationElements(nested)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		DecodeHook:       timeHook,
		Result:           &out,
	})
	if err != nil {
		return out, err
	}
	if err := dec.Decode(app); err != nil {
		return out, fmt.Errorf("decode %T: %w", out, err)
	}
	return out, nil
}

// DecodeAll decodes every row, stopping at the first failure.
func DecodeAll[T Schema](rows []Record) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := Decode[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func applicationElements(v any) []Record {
	var out []Record
	switch list := v.(type) {
	case []Record:
		out = make([]Record, 0, len(list))
		for _, r := range list {
			out = append(out, ToApplication(r))
		}
	case []any:
		out = make([]Record, 0, len(list))
		for _, e := range list {
			if r, ok := e.(Record); ok {
				out = append(out, ToApplication(r))
			}
		}
	default:
		out = []Record{}
	}
	return out
}

func timeHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("unrecognised time %q", v)
	case []byte:
		return timeHook(from, to, string(v))
	}
	return data, nil
}

func flatten(v reflect.Value, out Record) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous && fv.Kind() == reflect.Struct {
			flatten(fv, out)
			continue
		}

		name, omitEmpty := jsonName(f)
		if name == "-" {
			continue
		}
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		} else if omitEmpty && fv.IsZero() {
			continue
		}
		if fv.Kind() == reflect.Slice {
			continue
		}
		if tv, ok := fv.Interface().(time.Time); ok {
			if tv.IsZero() {
				continue
			}
			out[name] = tv
			continue
		}
		out[name] = plain(fv)
	}
}

// plain unwraps named basic types (Role, FuelType...) so drivers see string/int64/float64.
func plain(v reflect.Value) any {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	case reflect.Bool:
		return v.Bool()
	}
	return v.Interface()
}

func jsonName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name, strings.Contains(opts, "omitempty")
}
