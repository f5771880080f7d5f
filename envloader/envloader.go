package envloader

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolve o valor de uma variável (mesma assinatura de os.LookupEnv).
type LookupFunc func(key string) (string, bool)

var durationType = reflect.TypeOf(time.Duration(0))

// phase controla quais camadas loadStruct aplica.
type phase int

const (
	phaseAll      phase = iota // ambiente, valor existente e envDefault
	phaseDefaults              // apenas envDefault em campos zerados
	phaseEnv                   // apenas variáveis definidas (e envRequired)
)

// Load preenche uma struct com valores de variáveis de ambiente
// baseado nas tags "env", "envDefault" e "envRequired".
//
// Precedência: variável definida > valor já presente no campo > envDefault.
// Assim, valores carregados antes (ex: de um arquivo YAML) só são
// substituídos quando a variável existe no ambiente.
func Load(config interface{}) error {
	return LoadWithLookup(config, os.LookupEnv)
}

// LoadWithLookup é como Load, mas obtém os valores de lookup.
func LoadWithLookup(config interface{}, lookup LookupFunc) error {
	return load(config, lookup, phaseAll)
}

// ApplyDefaults preenche com envDefault apenas os campos zerados, sem ler o
// ambiente. Usado antes de decodificar um arquivo, para que zeros explícitos
// do arquivo prevaleçam sobre os padrões.
func ApplyDefaults(config interface{}) error {
	return load(config, nil, phaseDefaults)
}

// Override aplica apenas as variáveis definidas em lookup, sem envDefault.
// Campos envRequired que continuam zerados geram MissingVariableError.
func Override(config interface{}, lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return load(config, lookup, phaseEnv)
}

func load(config interface{}, lookup LookupFunc, ph phase) error {
	val := reflect.ValueOf(config)
	if val.Kind() != reflect.Ptr || val.IsNil() || val.Elem().Kind() != reflect.Struct {
		return &InvalidConfigError{Value: reflect.TypeOf(config)}
	}
	return loadStruct(val.Elem(), lookup, ph)
}

func loadStruct(val reflect.Value, lookup LookupFunc, ph phase) error {
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := loadStruct(field, lookup, ph); err != nil {
				return err
			}
			continue
		}

		if field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct {
			if field.IsNil() {
				field.Set(reflect.New(field.Type().Elem()))
			}
			if err := loadStruct(field.Elem(), lookup, ph); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		var envValue string
		switch ph {
		case phaseDefaults:
			if !field.IsZero() {
				continue
			}
			envValue = fieldType.Tag.Get("envDefault")
		case phaseEnv:
			envValue, _ = lookup(envTag)
			if envValue == "" {
				if field.IsZero() && fieldType.Tag.Get("envRequired") == "true" {
					return &MissingVariableError{FieldName: fieldType.Name, EnvVar: envTag}
				}
				continue
			}
		default:
			var ok bool
			envValue, ok = lookup(envTag)
			if !ok || envValue == "" {
				if !field.IsZero() {
					continue
				}
				envValue = fieldType.Tag.Get("envDefault")
			}
			if envValue == "" && fieldType.Tag.Get("envRequired") == "true" {
				return &MissingVariableError{FieldName: fieldType.Name, EnvVar: envTag}
			}
		}

		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return &FieldError{
				FieldName: fieldType.Name,
				EnvVar:    envTag,
				Value:     envValue,
				Err:       err,
			}
		}
	}

	return nil
}

// setFieldValue define o valor de um campo baseado no seu tipo
func setFieldValue(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(intValue)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintValue, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(uintValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.ToLower(value))
		if err != nil {
			return err
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return &UnsupportedTypeError{Type: field.Type()}
		}
		parts := strings.Split(value, ",")
		items := reflect.MakeSlice(field.Type(), 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = reflect.Append(items, reflect.ValueOf(p).Convert(field.Type().Elem()))
			}
		}
		field.Set(items)

	default:
		return &UnsupportedTypeError{Type: field.Type()}
	}

	return nil
}

// MustLoad é similar ao Load, mas panic em caso de erro
func MustLoad(config interface{}) {
	if err := Load(config); err != nil {
		panic(err)
	}
}
