/*
Package resources resolves file resources for an application, mainly font
files.

As resource lookup may be a time-consuming task (scanning font directories
or the fonts installed on the system), some functions in this package will
work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the located resource. The call to the promise-function will then block
until lookup has completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'htmlpix.resources'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.resources")
}
