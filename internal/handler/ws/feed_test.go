package ws

import (
	"net/http/httptest"
	"strings"
	"testing"

	"WorldSim/internal/dataset"
	"WorldSim/internal/strategy"
	"WorldSim/internal/usecase"
	xhttp "WorldSim/pkg/http"
	xlogger "WorldSim/pkg/logger"
	"WorldSim/pkg/metrics"

	"github.com/gorilla/websocket"
)

const feedFixtureCSV = `tick,state,population,water_supply,food_supply,energy_supply,water_generated,food_generated,energy_generated,water_consumed,food_consumed,energy_consumed,state_gdp,gdp_growth_rate,welfare_index,inequality_index,migration_in,migration_out,order_type,resource_type,trade_quantity,trade_price,trade_executed,climate_event,shock_intensity
1,Kerala,100,50,40,30,10,10,10,8,8,8,10,2,0.6,0.3,10,5,bid,Water,10,20,true,None,0
2,Kerala,101,51,41,31,10,10,10,8,8,8,10.5,3,0.62,0.29,8,2,ask,Food,5,30,false,None,0
3,Kerala,102,52,42,32,10,10,10,8,8,8,11,4,0.64,0.28,6,1,bid,Energy,20,25,true,None,0
1,Punjab,200,60,50,40,12,12,12,11,11,11,20,1,0.5,0.4,3,9,ask,Food,8,18,true,None,0
2,Punjab,199,60,50,40,12,12,12,11,11,11,20.2,1.5,0.52,0.41,2,8,bid,Water,12,19,false,None,0
3,Punjab,198,60,50,40,12,12,12,11,11,11,20.4,2,0.54,0.42,1,7,ask,Energy,9,21,true,None,0
`

// promauto collectors register against the default registry once per binary.
var testRec = metrics.New()

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

// newFeedServer builds the real HTTP server, middleware chain included, so
// the upgrade path is exercised exactly as it runs in production.
func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	ds, err := dataset.ReadCSV(strings.NewReader(feedFixtureCSV))
	if err != nil {
		t.Fatalf("fixture load: %v", err)
	}
	logger := testLogger(t)
	sim := usecase.NewSimulate(ds, strategy.NewAnalyzer(strategy.DefaultThresholds()), testRec, logger)
	srv := xhttp.NewServer(NewFeedHandler(logger, sim), xhttp.WithLogger(logger))
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server, query string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/series?" + query
}

func TestSeriesFeedHandshakeAndReplay(t *testing.T) {
	ts := newFeedServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "tick_start=1&tick_end=2"), nil)
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	defer conn.Close()

	var ticks []int
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			t.Fatalf("read frame: %v", err)
		}
		if f.Type == "complete" {
			if f.Ticks != 2 {
				t.Fatalf("complete frame reports %d ticks, want 2", f.Ticks)
			}
			break
		}
		if f.Type != "tick" {
			t.Fatalf("unexpected frame type %q", f.Type)
		}
		ticks = append(ticks, f.Tick)
	}
	if len(ticks) != 2 || ticks[0] != 1 || ticks[1] != 2 {
		t.Fatalf("streamed ticks = %v, want [1 2]", ticks)
	}
}

func TestSeriesFeedRejectsZeroTick(t *testing.T) {
	ts := newFeedServer(t)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "tick_start=0&tick_end=2"), nil)
	if err == nil {
		conn.Close()
		t.Fatalf("handshake succeeded for tick_start=0")
	}
	if resp != nil && resp.StatusCode == 101 {
		t.Fatalf("connection upgraded for tick_start=0")
	}
}
