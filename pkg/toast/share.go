package toast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// Shared flashes whatever is pending and returns the stored toasts for the
// page being rendered. An empty result is returned as nil so callers can omit
// the key from the payload. A non-empty result marks the toasts as delivered:
// the middleware forgets them once the response is written.
func Shared(ctx context.Context) []Record {
	st, ok := stateFromContext(ctx)
	if !ok || st.toaster == nil {
		return nil
	}

	st.toaster.Flash()
	records := st.toaster.Read()
	if len(records) == 0 {
		return nil
	}

	if !st.delivered {
		st.delivered = true
		st.metrics.delivered(len(records))
	}
	return records
}

// Props returns the page props carrying the shared toasts under the
// configured prop key. The key is absent when there is nothing to show.
func Props(ctx context.Context) map[string]any {
	props := map[string]any{}
	records := Shared(ctx)
	if records == nil {
		return props
	}
	t, _ := FromContext(ctx)
	props[t.PropKey()] = records
	return props
}

// Script renders the shared toasts as a JSON data island:
//
//	<script type="application/json" id="toasts">[...]</script>
//
// Nothing is rendered when there are no toasts.
func Script() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		records := Shared(ctx)
		if records == nil {
			return nil
		}
		t, _ := FromContext(ctx)

		// json.Marshal escapes <, > and & so the payload cannot close the tag.
		data, err := json.Marshal(records)
		if err != nil {
			return fmt.Errorf("failed to encode toasts: %w", err)
		}
		_, err = fmt.Fprintf(w, `<script type="application/json" id="%s">%s</script>`,
			templ.EscapeString(t.PropKey()), data)
		return err
	})
}

// PatchSignals sends the shared toasts as a DataStar signal patch keyed by the
// prop key. Nothing is sent when there are no toasts.
func PatchSignals(ctx context.Context, sse *datastar.ServerSentEventGenerator) error {
	records := Shared(ctx)
	if records == nil {
		return nil
	}
	t, _ := FromContext(ctx)

	data, err := json.Marshal(map[string]any{t.PropKey(): records})
	if err != nil {
		return fmt.Errorf("failed to encode toasts: %w", err)
	}
	return sse.PatchSignals(data)
}
