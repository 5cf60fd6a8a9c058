package aggregation

import (
	"testing"

	"fn-peaks/src/models"

	"github.com/stretchr/testify/assert"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want models.MDeviceSample
		ok   bool
	}{
		{`"FN1","Node One","45.2"`, models.MDeviceSample{DeviceID: "FN1", Name: "Node One", Value: 45.2}, true},
		{`FN2,Node Two,7`, models.MDeviceSample{DeviceID: "FN2", Name: "Node Two", Value: 7}, true},
		{`"FN3","Three","1.5e2","extra"`, models.MDeviceSample{DeviceID: "FN3", Name: "Three", Value: 150}, true},
		{`"FN4","",-3.25`, models.MDeviceSample{DeviceID: "FN4", Name: "", Value: -3.25}, true},
		{`"FN5","Five"," 12.5 "`, models.MDeviceSample{DeviceID: "FN5", Name: "Five", Value: 12.5}, true},
		{`""FN6"","Six","1"`, models.MDeviceSample{DeviceID: `"FN6"`, Name: "Six", Value: 1}, true},
		{`"FN1","Node One"`, models.MDeviceSample{}, false},
		{``, models.MDeviceSample{}, false},
		{`"FN1","Node One","n/a"`, models.MDeviceSample{}, false},
		{`"FN1","Node One","45,2"`, models.MDeviceSample{DeviceID: "FN1", Name: "Node One", Value: 45}, true},
		{`"FN1","Node One","NaN"`, models.MDeviceSample{}, false},
		{`"FN1","Node One","Inf"`, models.MDeviceSample{}, false},
		{`"FN1","Node One","0x1p4"`, models.MDeviceSample{}, false},
		{`"FN1","Node One","1e999"`, models.MDeviceSample{}, false},
		{`"FN1","Node One","1_000"`, models.MDeviceSample{}, false},
		{`"FN1","Node One","1_0.5"`, models.MDeviceSample{}, false},
	}

	for _, tc := range cases {
		got, ok := ParseLine(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.line)
		}
	}
}

func TestUnquoteStripsSingleLayer(t *testing.T) {
	assert.Equal(t, "abc", unquote(`"abc"`))
	assert.Equal(t, `"abc"`, unquote(`""abc""`))
	assert.Equal(t, "abc", unquote(`"abc`))
	assert.Equal(t, "", unquote(`"`))
}
