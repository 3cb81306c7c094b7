// Package relay is the HTTP client side of the rights protocol. HTTP
// implements domain.RightsService, so client flows run unchanged against a
// remote server or an in-process engine.
//
// Requests accept a context for cancellation and deadlines. Non-2xx statuses
// are returned as errors naming the method, URL, status and the server's
// message.
package relay
