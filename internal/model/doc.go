// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the typed, in-memory representation of a stimulus
// component: its Parameters and the Descriptor that groups them.
//
// # Core Concepts
//
//   - Parameter: one named attribute with a cty.Value, a declared ValType, an
//     UpdatePolicy and the metadata used to validate it.
//
//   - Descriptor: the ordered collection of Parameters for one component, plus
//     its identity (name, type tag, constructor class), the Targets it can be
//     generated for and the runtime Libraries it requires.
//
//   - Target: one of the two runtimes generated code must run in, the native
//     desktop runtime or the browser runtime.
//
// A Descriptor is built once with a Builder. Parameters that a component does
// not carry are filtered out at build time with Builder.Without, so the
// Descriptor never holds a name in Order that is missing from Params.
//
// During a generation pass the Descriptor is only read. The resolver and the
// emitters never write to it, which makes a Descriptor safe to share between
// concurrent passes.
package model
