package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strconv"

	json "github.com/goccy/go-json"

	"poirec-server/search"
	"poirec-server/utils/errors"
	"poirec-server/validation"
)

const maxBodyBytes = 1 << 20

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if err == io.EOF {
			return errors.NewAPIError(errors.ErrInvalidInput.Code, "Request body is empty", http.StatusBadRequest)
		}
		return errors.NewAPIError(errors.ErrInvalidInput.Code, errors.ErrInvalidInput.Message, http.StatusBadRequest, err.Error())
	}
	return validation.ValidateStruct(dst)
}

func invalidParam(name string, err error) error {
	return errors.NewAPIError(errors.ErrInvalidInput.Code, "Invalid query parameter "+name, http.StatusBadRequest, err.Error())
}

// optionalString is set only for a present, non-empty parameter.
func optionalString(q url.Values, name string) search.Optional[string] {
	if v := q.Get(name); v != "" {
		return search.Some(v)
	}
	return search.None[string]()
}

func optionalFloat(q url.Values, name string) (search.Optional[float64], error) {
	raw := q.Get(name)
	if raw == "" {
		return search.None[float64](), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return search.None[float64](), invalidParam(name, err)
	}
	return search.Some(v), nil
}

func optionalInt(q url.Values, name string) (search.Optional[int], error) {
	raw := q.Get(name)
	if raw == "" {
		return search.None[int](), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return search.None[int](), invalidParam(name, err)
	}
	return search.Some(v), nil
}
