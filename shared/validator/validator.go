package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"parkflow/config"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const bytesPerMB = 1024 * 1024

var (
	validate *val.Validate

	platePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 -]{0,19}$`)
)

func fileHeader(field val.FieldLevel) (multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return file, true
	case *multipart.FileHeader:
		if file == nil {
			return multipart.FileHeader{}, false
		}

		return *file, true
	}

	return multipart.FileHeader{}, false
}

func mimetypes(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

func maxFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	maxMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= maxMB*bytesPerMB
}

// plate accepts what a plate looks like once trimmed and uppercased.
func plate(field val.FieldLevel) bool {
	return platePattern.MatchString(strings.ToUpper(strings.TrimSpace(field.Field().String())))
}

func init() {
	cfg := config.Get()

	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	custom := map[string]val.Func{
		// Types with a Validate(*config.Config) error method.
		"parkflow": func(fl val.FieldLevel) bool {
			method := fl.Field().MethodByName("Validate")
			if !method.IsValid() {
				return false
			}

			return method.Call([]reflect.Value{reflect.ValueOf(cfg)})[0].IsNil()
		},
		"empty": func(fl val.FieldLevel) bool {
			return fl.Field().IsZero()
		},
		"mimetypes":   mimetypes,
		"maxfilesize": maxFileSize,
		"plate":       plate,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate decodes a JSON body into data and validates it.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
