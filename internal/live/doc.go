// Package live connects browsers to the application over websockets.
//
// Hub implements view.Surface: every batch of ops is encoded once as JSON and
// queued to each connected client. A client whose queue is full is dropped
// instead of stalling the application loop; the browser reconnects and
// reloads the page state. Messages read from a client are decoded as
// view.Input and passed to the InputHandler.
package live
