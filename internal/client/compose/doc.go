// Package compose is the blog creation form, decoupled from any particular
// front end. A View holds the form fields, an optional image with its
// data-URL preview and the loading and error flags. It mirrors every edit
// to a draft.Autosaver and, on Submit, packages the form into a multipart
// create call.
//
// Navigation and confirmation are injected as callbacks so the same View
// drives the interactive CLI and the tests.
package compose
