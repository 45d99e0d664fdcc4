// Package lexalign resolves raw user preferences into a canonical translation
// configuration, sends one request per conversation turn to an AI translation
// backend, and turns the heterogeneous response into a validated, ordered,
// per-style word-alignment model.
//
// The model drives both visual rendering and word-level audio narration under
// one hard invariant: what is displayed for a word pair must equal, character
// for character, what is spoken for that pair.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/LexaLabs/lexalign"
//	    "github.com/LexaLabs/lexalign/provider"
//	    "github.com/LexaLabs/lexalign/store"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    engine := lexalign.NewEngine(p,
//	        lexalign.WithStore(store.NewMemoryStore()),
//	    )
//
//	    result, err := engine.Submit(context.Background(), "¿Dónde está la estación?")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, st := range result.Styles {
//	        fmt.Println(st.Style, st.SentenceText)
//	    }
//	}
//
// The engine never fails on malformed alignment data: styles the backend
// shortchanges are completed with clearly marked fallback entries and the
// turn finishes in the DEGRADED state instead of erroring.
package lexalign
