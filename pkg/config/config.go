// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds the one piece of process-wide mutable state the
// original source carries (coli::global::auto_data_mapping), folded into
// an explicit record a caller threads through rather than a package
// global (Design Notes §9).
package config

// Config is passed into sched.NewFunction.
type Config struct {
	// AutoDataMapping, when true, lets downstream lowering infer a
	// buffer's memory layout from its access pattern rather than
	// requiring the caller to specify one explicitly.
	AutoDataMapping bool
}

// Default returns the zero-value configuration (AutoDataMapping off,
// matching the original's default-initialized global).
func Default() Config { return Config{} }
