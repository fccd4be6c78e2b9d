package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers all engine.* Lua tables into L:
//
//	engine.log.{debug,info,warn,error}(msg)
//	engine.dice.roll(expr)       -> {total, dice, modifier}
//	engine.dice.chance(percent)  -> bool
//	engine.events.trigger(name, ...) -> {msg, ...}
//	engine.world.unlock(room)    -> bool
//	engine.world.lock(room)      -> bool
//	engine.world.room(room)      -> {id, title, locked} or nil
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", m.logModule(L))
	L.SetField(engine, "dice", m.diceModule(L))
	L.SetField(engine, "events", m.eventsModule(L))
	L.SetField(engine, "world", m.worldModule(L))
	L.SetGlobal("engine", engine)
}

func (m *Manager) logModule(L *lua.LState) *lua.LTable {
	level := func(log func(string, ...zap.Field)) lua.LGFunction {
		return func(L *lua.LState) int {
			log(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"debug": level(m.logger.Debug),
		"info":  level(m.logger.Info),
		"warn":  level(m.logger.Warn),
		"error": level(m.logger.Error),
	})
}

func (m *Manager) diceModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"roll": func(L *lua.LState) int {
			result, err := m.roller.RollExpr(L.CheckString(1))
			if err != nil {
				L.ArgError(1, err.Error())
				return 0
			}
			sum := 0
			for _, d := range result.Dice {
				sum += d
			}
			t := L.NewTable()
			t.RawSetString("total", lua.LNumber(result.Total()))
			t.RawSetString("dice", lua.LNumber(sum))
			t.RawSetString("modifier", lua.LNumber(result.Modifier))
			L.Push(t)
			return 1
		},
		"chance": func(L *lua.LState) int {
			L.Push(lua.LBool(m.roller.Chance(L.CheckInt(1))))
			return 1
		},
	})
}

func (m *Manager) eventsModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"trigger": func(L *lua.LState) int {
			name := L.CheckString(1)
			args := make([]string, 0, L.GetTop()-1)
			for i := 2; i <= L.GetTop(); i++ {
				args = append(args, L.Get(i).String())
			}
			out := L.NewTable()
			if m.TriggerEvent != nil {
				for _, msg := range m.TriggerEvent(name, args...) {
					out.Append(lua.LString(msg))
				}
			}
			L.Push(out)
			return 1
		},
	})
}

func (m *Manager) worldModule(L *lua.LState) *lua.LTable {
	setLocked := func(locked bool) lua.LGFunction {
		return func(L *lua.LState) int {
			roomID := L.CheckString(1)
			ok := false
			if m.SetRoomLocked != nil {
				ok = m.SetRoomLocked(roomID, locked)
			}
			L.Push(lua.LBool(ok))
			return 1
		}
	}
	return L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"unlock": setLocked(false),
		"lock":   setLocked(true),
		"room": func(L *lua.LState) int {
			roomID := L.CheckString(1)
			if m.QueryRoom == nil {
				L.Push(lua.LNil)
				return 1
			}
			info := m.QueryRoom(roomID)
			if info == nil {
				L.Push(lua.LNil)
				return 1
			}
			t := L.NewTable()
			t.RawSetString("id", lua.LString(info.ID))
			t.RawSetString("title", lua.LString(info.Title))
			t.RawSetString("locked", lua.LBool(info.Locked))
			L.Push(t)
			return 1
		},
	})
}
