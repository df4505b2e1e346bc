// Copyright 2013 Google, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rawterm is the OS- and byte-stream-facing layer beneath the
// nrl editor: UTF-8 stepping, integer HSV color math, the epoll/signalfd
// event sources, raw terminal mode, and the ANSI byte sequences used to
// position the cursor and draw frame decoration. Nothing in this package
// knows about a text buffer or an edit session; it only knows bytes, fds,
// and colors.
package rawterm
