package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindHeader(t *testing.T) {
	type args struct {
		header map[string]string
		out    interface{}
	}

	type normalCase struct {
		App     string `header:"app"`
		Service string `header:"service"`

		Non   string `header:"-"`
		Empty bool
	}

	type complexCase struct {
		Nine              int64   `header:"nine"`
		ThousandAndSeven  uint64  `header:"thousand-and-seven"`
		NegativeThirtyTwo int64   `header:"negative-thirty-two"`
		HundredPointSix   float32 `header:"hundred-point-six"`
		Rose              string  `header:"rose"`
	}

	tests := []struct {
		name    string
		args    args
		want    interface{}
		wantErr error
	}{
		{
			name: "normal bind header",
			args: args{
				header: map[string]string{
					"app":     "storefront",
					"service": "catalog-web",
					"non":     "non",
					"empty":   "empty",
				},
				out: new(normalCase),
			},
			want: &normalCase{
				App:     "storefront",
				Service: "catalog-web",
			},
		},
		{
			name: "complex bind header",
			args: args{
				header: map[string]string{
					"nine":                "9",
					"thousand-and-seven":  "1007",
					"negative-thirty-two": "-32",
					"hundred-point-six":   "100.6",
					"rose":                "rose",
				},
				out: new(complexCase),
			},
			want: &complexCase{
				Nine:              9,
				ThousandAndSeven:  1007,
				NegativeThirtyTwo: -32,
				HundredPointSix:   100.6,
				Rose:              "rose",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.args.header {
				header.Set(k, v)
			}
			err := bindHeader(header, tt.args.out)
			assert.EqualValues(t, tt.wantErr, err)
			assert.EqualValues(t, tt.want, tt.args.out)
		})
	}
}

func TestBindQuery(t *testing.T) {
	type listing struct {
		Page   string `query:"page"`
		Brand  string `query:"brand"`
		Search string `query:"search"`
		Limit  int    `query:"limit"`
		Skip   string
	}

	t.Run("raw strings are kept verbatim", func(t *testing.T) {
		values := url.Values{}
		values.Set("page", "abc")
		values.Set("brand", "Acme, Globex")
		values.Add("search", "first")
		values.Add("search", "second")

		out := &listing{Limit: 10}
		require.NoError(t, bindQuery(values, out))
		assert.Equal(t, &listing{Page: "abc", Brand: "Acme, Globex", Search: "first", Limit: 10}, out)
	})

	t.Run("typed field", func(t *testing.T) {
		values := url.Values{"limit": {"25"}}
		out := &listing{}
		require.NoError(t, bindQuery(values, out))
		assert.Equal(t, 25, out.Limit)
	})

	t.Run("typed field rejects garbage", func(t *testing.T) {
		values := url.Values{"limit": {"many"}}
		out := &listing{}
		assert.Error(t, bindQuery(values, out))
	})

	t.Run("non pointer", func(t *testing.T) {
		assert.Error(t, bindQuery(url.Values{}, listing{}))
	})
}

func TestBindAndValidate(t *testing.T) {
	type request struct {
		Page string `query:"page" validate:"omitempty,max=8"`
	}

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodGet, "/?page=123456789", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	var out request
	err := BindAndValidate(c, &out)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
