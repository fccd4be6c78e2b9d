package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/Kingly77/VentureTextAdventure/internal/game/dice"
)

// globalZoneID is the reserved key for shared scripts loaded via LoadGlobal.
// CallHook falls back to this VM when no zone VM is found.
const globalZoneID = "__global__"

// RoomInfo is a snapshot of a room passed to Lua callbacks.
type RoomInfo struct {
	ID     string
	Title  string
	Locked bool
}

// zoneVM is a loaded Lua state and the instruction budget granted to each
// execution in it.
type zoneVM struct {
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per zone and exposes hook dispatch.
//
// Load and Close may run on any goroutine; CallHook is driven from the game
// goroutine only, since hooks may re-enter the same VM through engine.*
// callbacks (a script triggering an event whose handler calls another hook).
type Manager struct {
	mu     sync.RWMutex
	zones  map[string]*zoneVM
	roller *dice.Roller
	logger *zap.Logger

	// Injected after construction. nil = no-op in engine.* modules.
	TriggerEvent  func(name string, args ...string) []string
	SetRoomLocked func(roomID string, locked bool) bool
	QueryRoom     func(roomID string) *RoomInfo
}

// NewManager creates a Manager.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with an empty zone map.
func NewManager(roller *dice.Roller, logger *zap.Logger) *Manager {
	if roller == nil {
		panic("scripting.NewManager: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		zones:  make(map[string]*zoneVM),
		roller: roller,
		logger: logger,
	}
}

// LoadZone creates a sandboxed VM for zoneID, registers all engine.* modules,
// then executes every *.lua file in scriptDir in lexicographic order.
//
// Precondition: zoneID must be non-empty; scriptDir must be a readable directory.
// Postcondition: Zone VM is registered; returns error on Lua load failure.
func (m *Manager) LoadZone(zoneID, scriptDir string, instLimit int) error {
	return m.loadInto(zoneID, scriptDir, instLimit)
}

// LoadGlobal creates the "__global__" VM for shared scripts accessible as a
// CallHook fallback from any zone.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: Global VM is registered; returns error on Lua load failure.
func (m *Manager) LoadGlobal(scriptDir string, instLimit int) error {
	return m.loadInto(globalZoneID, scriptDir, instLimit)
}

// LoadString loads a single chunk of Lua source into a fresh VM for zoneID.
// It backs inline scripts embedded in world files.
//
// Postcondition: Zone VM is registered; returns error on Lua load failure.
func (m *Manager) LoadString(zoneID, src string, instLimit int) error {
	L := NewSandboxedState()
	m.RegisterModules(L)
	release := Budget(L, instLimit)
	err := L.DoString(src)
	release()
	if err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading inline source for %q: %w", zoneID, err)
	}
	m.install(zoneID, &zoneVM{L: L, limit: instLimit})
	return nil
}

func (m *Manager) loadInto(key, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		release := Budget(L, instLimit)
		err := L.DoFile(path)
		release()
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.install(key, &zoneVM{L: L, limit: instLimit})
	m.logger.Debug("scripting: zone loaded",
		zap.String("zone", key),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

func (m *Manager) install(key string, vm *zoneVM) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.zones[key]; ok {
		old.L.Close()
	}
	m.zones[key] = vm
}

func (m *Manager) lookup(zoneID string) *zoneVM {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if vm, ok := m.zones[zoneID]; ok {
		return vm
	}
	return m.zones[globalZoneID]
}

// HasHook reports whether hook is a Lua function in zoneID's VM (or the
// global fallback).
func (m *Manager) HasHook(zoneID, hook string) bool {
	vm := m.lookup(zoneID)
	if vm == nil {
		return false
	}
	_, ok := vm.L.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named Lua global function in zoneID's VM. If the zone has
// no VM, the __global__ VM is tried as a fallback. Returns (LNil, nil) if the
// hook is not defined or no VM exists. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(zoneID, hook string, args ...lua.LValue) (lua.LValue, error) {
	vm := m.lookup(zoneID)
	if vm == nil {
		m.logger.Info("scripting: no VM for zone",
			zap.String("zone", zoneID),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	L := vm.L
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	release := Budget(L, vm.limit)
	defer release()
	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("zone", zoneID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// CallString calls hook with string arguments and returns its result when it
// is a non-empty string. Any other result, including nil and false, reports
// ("", false).
func (m *Manager) CallString(zoneID, hook string, args ...string) (string, bool) {
	lv := make([]lua.LValue, len(args))
	for i, a := range args {
		lv[i] = lua.LString(a)
	}
	ret, err := m.CallHook(zoneID, hook, lv...)
	if err != nil {
		return "", false
	}
	s, ok := ret.(lua.LString)
	if !ok || s == "" {
		return "", false
	}
	return string(s), true
}

// Close releases every VM.
//
// Postcondition: No zone VMs remain; subsequent CallHook calls return LNil.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, vm := range m.zones {
		vm.L.Close()
		delete(m.zones, key)
	}
}
