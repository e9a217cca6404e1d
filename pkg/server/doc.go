// Package server serves the tooltip playground: a page whose tooltip is
// driven by a Controller running on the server.
//
// The browser reports geometry and pointer events over a websocket; the
// server decides visibility and position and sends them back:
//
//	browser                          server
//	  hello {viewport, rects}  --->  session: host.Loop + tooltip.Controller
//	  pointer {target, event}  --->  Element.Emit on the loop
//	                           <---  notify {kind}, visibility {visible, id}
//	                           <---  position {x, y, placement}
//	  rendered {rects}         --->  UpdatePosition with measured size
//	  layout {rects}           --->  tracking callbacks
//
// # Example Usage
//
//	srv := server.New(server.DefaultConfig(),
//	    server.WithRegistry(prometheus.NewRegistry()),
//	)
//	http.ListenAndServe(":8080", srv)
//
// Routes: GET / (page), GET /ws (session), GET /metrics, GET /healthz.
//
// # Thread Safety
//
// Each session owns one host.Loop. The read goroutine only decodes frames
// and dispatches them onto the loop; all controller and element access
// happens there. Writes to the connection are serialized by a mutex.
package server
