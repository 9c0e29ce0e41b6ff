// Forkcast - Food Decision Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/forkcast

// Package services adapts Forkcast components to suture.Service.
//
// Each wrapper translates a component's own lifecycle (ListenAndServe and
// Shutdown, Watermill's Run, a ticker loop) into Serve(ctx) and implements
// fmt.Stringer so supervisor logs name the service.
package services
