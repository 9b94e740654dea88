package router

import (
	"encoding/json"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

func bindQuery(r *http.Request, out any) error {
	values := map[string]any{}
	for key, value := range r.URL.Query() {
		if len(value) == 1 {
			values[key] = value[0]
		} else {
			values[key] = value
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}

func bindBody(r *http.Request, out any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(out); err != nil && err.Error() != "EOF" {
		return err
	}

	return nil
}
