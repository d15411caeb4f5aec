package cmd

import "testing"

func TestInit_NoKongContext(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic without a kong context")
		}
	}()

	i := &Init{}

	_ = i.Run(t.Context())
}
