// Package app is the transactional core of the gdsh shell layer.
//
// Package: app
// Title: Shell App Core
// Description: Every shell command (an "app") implements the App
//              interface; the Executor wraps each invocation in a
//              store transaction that is finalized exactly once on
//              every exit path. The package also provides the small
//              parsing and matching sublanguage concrete apps depend
//              on: the direction resolver, the generic enum resolver
//              with prefix fallback, the case-sensitivity-aware
//              pattern matcher and the per-session current-node
//              resolver.
// Version: v0.1.0
// Created: 2025-02-10
package app
