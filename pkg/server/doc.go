// Package server hosts the folio route table over HTTP.
//
// The server is the host UI framework the router is mounted into. It has
// two ways in:
//
//   - Initial page loads (GET on any path) resolve the request URL with a
//     fresh router, render the matched view inside the page shell, and
//     answer 404 with the not-found view when nothing matches.
//   - A WebSocket at /_folio/ws carries client-side navigation. Each
//     connection is one UI session with its own router; the thin client
//     sends navigate, back and forward messages, and the server answers
//     with the rendered view fragment, which the client swaps in before
//     updating the address bar.
//
// # Wire Messages
//
// All WebSocket messages are JSON text frames:
//
//	→ {"type":"start","href":"/#/cv"}
//	→ {"type":"navigate","path":"/cv","replace":false}
//	→ {"type":"back"} / {"type":"forward"} / {"type":"ping"}
//	← {"type":"hello","session":"…","history":"path","base":""}
//	← {"type":"render","route":"cv","location":"/cv","href":"/cv","found":true,…}
//	← {"type":"error","message":"…"} / {"type":"pong"}
//
// # Observability
//
// Navigations and renders are counted with Prometheus (served at /metrics)
// and traced with OpenTelemetry through the global tracer provider.
package server
